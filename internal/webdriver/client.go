package webdriver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"
)

// webElementKey is the W3C WebDriver element identifier key used in element
// reference objects returned by the remote end.
const webElementKey = "element-6066-11e4-a52e-4f735466cecf"

// HTTPClient is a Client speaking the W3C WebDriver wire protocol over HTTP
// against a remote grid endpoint.
type HTTPClient struct {
	rc *resty.Client
}

// NewHTTPClient creates a wire-protocol client for the given grid endpoint.
// The timeout bounds each individual protocol call, which in particular makes
// it cover the entire session-creation request.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPClient{rc: rc}
}

// Close releases the underlying HTTP client resources.
func (c *HTTPClient) Close() error {
	return c.rc.Close()
}

// wireError is the W3C error response envelope.
type wireError struct {
	Value struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	} `json:"value"`
}

// do issues one wire-protocol request and decodes the response envelope into
// out (which must be a pointer to a struct with a Value field). Transport
// failures and protocol-level error responses are both returned as errors;
// callers treat them uniformly as step failures.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	var werr wireError
	req.SetError(&werr)
	if out != nil {
		req.SetResult(out)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() {
		code := werr.Value.Error
		if code == "" {
			code = "unknown error"
		}
		return &ProtocolError{Code: code, Message: werr.Value.Message, Status: res.StatusCode()}
	}
	return nil
}

// Response envelopes for the protocol calls used by gridsmoke.
type (
	newSessionValue struct {
		Value struct {
			SessionID string `json:"sessionId"`
		} `json:"value"`
	}
	stringValue struct {
		Value string `json:"value"`
	}
	nullableStringValue struct {
		Value *string `json:"value"`
	}
	elementValue struct {
		Value map[string]string `json:"value"`
	}
	elementsValue struct {
		Value []map[string]string `json:"value"`
	}
)

// NewSession opens a remote session with the given capabilities.
func (c *HTTPClient) NewSession(ctx context.Context, caps Capabilities) (Session, error) {
	body := map[string]any{
		"capabilities": map[string]any{"alwaysMatch": caps},
	}
	var out newSessionValue
	if err := c.do(ctx, http.MethodPost, "/session", body, &out); err != nil {
		return nil, err
	}
	if out.Value.SessionID == "" {
		return nil, &ProtocolError{Code: "session not created", Message: "remote end returned no session id"}
	}
	return &httpSession{c: c, id: out.Value.SessionID}, nil
}

// httpSession implements Session against one live remote session.
type httpSession struct {
	c  *HTTPClient
	id string
}

func (s *httpSession) path(suffix string) string {
	return "/session/" + s.id + suffix
}

// ID returns the opaque session identifier.
func (s *httpSession) ID() string { return s.id }

// Navigate loads the given URL.
func (s *httpSession) Navigate(ctx context.Context, url string) error {
	return s.c.do(ctx, http.MethodPost, s.path("/url"), map[string]string{"url": url}, nil)
}

// Title returns the current page title.
func (s *httpSession) Title(ctx context.Context) (string, error) {
	var out stringValue
	if err := s.c.do(ctx, http.MethodGet, s.path("/title"), nil, &out); err != nil {
		return "", err
	}
	return out.Value, nil
}

// FindElement locates the first element matching the selector.
func (s *httpSession) FindElement(ctx context.Context, by, selector string) (Element, error) {
	var out elementValue
	body := map[string]string{"using": by, "value": selector}
	if err := s.c.do(ctx, http.MethodPost, s.path("/element"), body, &out); err != nil {
		return nil, err
	}
	return s.elementFromRef(out.Value)
}

// FindElements locates all elements matching the selector.
func (s *httpSession) FindElements(ctx context.Context, by, selector string) ([]Element, error) {
	var out elementsValue
	body := map[string]string{"using": by, "value": selector}
	if err := s.c.do(ctx, http.MethodPost, s.path("/elements"), body, &out); err != nil {
		return nil, err
	}
	elems := make([]Element, 0, len(out.Value))
	for _, ref := range out.Value {
		el, err := s.elementFromRef(ref)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}
	return elems, nil
}

// elementFromRef converts a wire element reference into an Element handle.
func (s *httpSession) elementFromRef(ref map[string]string) (Element, error) {
	id, ok := ref[webElementKey]
	if !ok || id == "" {
		return nil, &ProtocolError{Code: "unknown error", Message: "malformed element reference"}
	}
	return &httpElement{s: s, id: id}, nil
}

// SetImplicitWait sets the session's implicit element-wait timeout.
func (s *httpSession) SetImplicitWait(ctx context.Context, d time.Duration) error {
	return s.c.do(ctx, http.MethodPost, s.path("/timeouts"), map[string]any{"implicit": d.Milliseconds()}, nil)
}

// AddCookie sets a cookie on the session's current page.
func (s *httpSession) AddCookie(ctx context.Context, name, value string) error {
	body := map[string]any{"cookie": map[string]string{"name": name, "value": value}}
	return s.c.do(ctx, http.MethodPost, s.path("/cookie"), body, nil)
}

// Close releases the remote session.
func (s *httpSession) Close(ctx context.Context) error {
	return s.c.do(ctx, http.MethodDelete, s.path(""), nil, nil)
}

// httpElement implements Element for one located element.
type httpElement struct {
	s  *httpSession
	id string
}

func (e *httpElement) path(suffix string) string {
	return e.s.path("/element/" + e.id + suffix)
}

// Text returns the rendered text of the element.
func (e *httpElement) Text(ctx context.Context) (string, error) {
	var out stringValue
	if err := e.s.c.do(ctx, http.MethodGet, e.path("/text"), nil, &out); err != nil {
		return "", err
	}
	return out.Value, nil
}

// Attribute returns the value of the named HTML attribute.
func (e *httpElement) Attribute(ctx context.Context, name string) (string, error) {
	var out nullableStringValue
	if err := e.s.c.do(ctx, http.MethodGet, e.path("/attribute/"+name), nil, &out); err != nil {
		return "", err
	}
	if out.Value == nil {
		return "", nil
	}
	return *out.Value, nil
}

// Property returns the value of the named DOM property.
func (e *httpElement) Property(ctx context.Context, name string) (string, error) {
	var out nullableStringValue
	if err := e.s.c.do(ctx, http.MethodGet, e.path("/property/"+name), nil, &out); err != nil {
		return "", err
	}
	if out.Value == nil {
		return "", nil
	}
	return *out.Value, nil
}

// SendKeys types the given text into the element. Multi-byte input travels
// as-is; the wire format is JSON, so UTF-8 round-trips byte-for-byte.
func (e *httpElement) SendKeys(ctx context.Context, text string) error {
	return e.s.c.do(ctx, http.MethodPost, e.path("/value"), map[string]string{"text": text}, nil)
}

// Click performs a click on the element.
func (e *httpElement) Click(ctx context.Context) error {
	return e.s.c.do(ctx, http.MethodPost, e.path("/click"), map[string]any{}, nil)
}
