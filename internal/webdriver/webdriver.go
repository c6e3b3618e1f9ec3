//go:generate mockgen -source=webdriver.go -destination=mocks/mock_webdriver.go -package=mocks

package webdriver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Element locator strategies defined by the W3C WebDriver specification.
const (
	ByCSSSelector     = "css selector"
	ByLinkText        = "link text"
	ByPartialLinkText = "partial link text"
	ByTagName         = "tag name"
	ByXPath           = "xpath"
)

// KeyEnter is the WebDriver key code for the Enter key, used to submit a
// form from a focused input.
const KeyEnter = ""

// Client opens sessions against a remote grid endpoint.
type Client interface {
	// NewSession requests a new browser session with the given capabilities.
	// The entire creation call, not just the connect, is bounded by ctx.
	NewSession(ctx context.Context, caps Capabilities) (Session, error)
}

// Session is a handle to one live remote browser session. A Session is owned
// by exactly one goroutine and must be closed exactly once.
type Session interface {
	// ID returns the opaque session identifier assigned by the grid.
	ID() string
	// Navigate loads the given URL in the session's browser.
	Navigate(ctx context.Context, url string) error
	// Title returns the current page title.
	Title(ctx context.Context) (string, error)
	// FindElement locates the first element matching the selector.
	// A missing element is reported as a protocol "no such element" error.
	FindElement(ctx context.Context, by, selector string) (Element, error)
	// FindElements locates all elements matching the selector. An empty
	// slice with a nil error means nothing matched.
	FindElements(ctx context.Context, by, selector string) ([]Element, error)
	// SetImplicitWait sets the session's implicit element-wait timeout.
	// Explicit polling disables it (zero) so poll timing stays a pure
	// function of the poll parameters.
	SetImplicitWait(ctx context.Context, d time.Duration) error
	// AddCookie sets a cookie on the session's current page.
	AddCookie(ctx context.Context, name, value string) error
	// Close releases the remote session.
	Close(ctx context.Context) error
}

// Element is a handle to one located element within a session.
type Element interface {
	// Text returns the rendered text of the element.
	Text(ctx context.Context) (string, error)
	// Attribute returns the value of the named HTML attribute; an empty
	// string if the attribute is absent.
	Attribute(ctx context.Context, name string) (string, error)
	// Property returns the value of the named DOM property. Reading back a
	// typed input goes through the "value" property, not the attribute.
	Property(ctx context.Context, name string) (string, error)
	// SendKeys types the given text into the element.
	SendKeys(ctx context.Context, text string) error
	// Click performs a click on the element.
	Click(ctx context.Context) error
}

// ProtocolError is an error response from the remote end, as opposed to a
// transport failure. Code carries the W3C error string (e.g. "no such
// element", "session not created").
type ProtocolError struct {
	// Code is the W3C WebDriver error code.
	Code string
	// Message is the remote end's human-readable explanation.
	Message string
	// Status is the HTTP status of the response.
	Status int
}

// Error returns a formatted message combining the code and explanation.
func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("webdriver: %s (HTTP %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("webdriver: %s: %s", e.Code, e.Message)
}

// IsNoSuchElement reports whether err is the remote "no such element" error,
// which the polled locate treats as retryable rather than terminal.
func IsNoSuchElement(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe) && pe.Code == "no such element"
}
