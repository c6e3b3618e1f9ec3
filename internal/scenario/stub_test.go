package scenario

import (
	"context"
	"time"

	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// stubSession is an in-memory Session for engine tests. Selectors resolve
// against the elements map; everything else records its calls.
type stubSession struct {
	id    string
	title string

	elements   map[string][]webdriver.Element
	findErr    error
	findCalls  int
	beforeFind func(call int)

	implicitWaits []time.Duration
	implicitErr   error

	navigations []string
	navErr      error

	cookies   [][2]string
	cookieErr error

	closed   int
	closeErr error
}

func newStubSession() *stubSession {
	return &stubSession{id: "stub-session", elements: map[string][]webdriver.Element{}}
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Navigate(_ context.Context, url string) error {
	s.navigations = append(s.navigations, url)
	return s.navErr
}

func (s *stubSession) Title(context.Context) (string, error) {
	return s.title, nil
}

func (s *stubSession) FindElement(ctx context.Context, by, selector string) (webdriver.Element, error) {
	elems, err := s.FindElements(ctx, by, selector)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, &webdriver.ProtocolError{Code: "no such element", Message: selector}
	}
	return elems[0], nil
}

func (s *stubSession) FindElements(_ context.Context, _, selector string) ([]webdriver.Element, error) {
	s.findCalls++
	if s.beforeFind != nil {
		s.beforeFind(s.findCalls)
	}
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.elements[selector], nil
}

func (s *stubSession) SetImplicitWait(_ context.Context, d time.Duration) error {
	if s.implicitErr != nil {
		return s.implicitErr
	}
	s.implicitWaits = append(s.implicitWaits, d)
	return nil
}

func (s *stubSession) AddCookie(_ context.Context, name, value string) error {
	if s.cookieErr != nil {
		return s.cookieErr
	}
	s.cookies = append(s.cookies, [2]string{name, value})
	return nil
}

func (s *stubSession) Close(context.Context) error {
	s.closed++
	return s.closeErr
}

// cookieValues returns the values recorded for one cookie name, in order.
func (s *stubSession) cookieValues(name string) []string {
	var vals []string
	for _, c := range s.cookies {
		if c[0] == name {
			vals = append(vals, c[1])
		}
	}
	return vals
}

// stubElement is an in-memory Element. SendKeys accumulates into value,
// which Property("value") reads back; onClick, when set, runs per click.
type stubElement struct {
	text    string
	textErr error
	value   string
	sendErr error
	attrs   map[string]string
	clicks  int
	onClick func()
}

func (e *stubElement) Text(context.Context) (string, error) {
	return e.text, e.textErr
}

func (e *stubElement) Attribute(_ context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *stubElement) Property(_ context.Context, name string) (string, error) {
	if name == "value" {
		return e.value, nil
	}
	return "", nil
}

func (e *stubElement) SendKeys(_ context.Context, text string) error {
	if e.sendErr != nil {
		return e.sendErr
	}
	e.value += text
	return nil
}

func (e *stubElement) Click(context.Context) error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}
