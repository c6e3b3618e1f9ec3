package webdriver

import (
	"fmt"
	"strings"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
)

// Browser is the closed set of browser kinds a session can request. The
// zero value is invalid; a Browser only exists after ParseBrowser accepts
// the input, which keeps unknown kinds out of every later layer.
type Browser int

const (
	// BrowserFirefox requests a Firefox session. This is the default kind.
	BrowserFirefox Browser = iota + 1
	// BrowserChrome requests a Chrome session.
	BrowserChrome
	// BrowserSafari requests a Safari session.
	BrowserSafari
)

// browserNames maps each kind to its wire-level browserName value.
var browserNames = map[Browser]string{
	BrowserFirefox: "firefox",
	BrowserChrome:  "chrome",
	BrowserSafari:  "safari",
}

// ParseBrowser resolves a user-supplied browser kind, case-insensitively.
// Unrecognized input is a configuration error raised before any network
// call is made.
func ParseBrowser(s string) (Browser, error) {
	switch strings.ToLower(s) {
	case "firefox":
		return BrowserFirefox, nil
	case "chrome":
		return BrowserChrome, nil
	case "safari":
		return BrowserSafari, nil
	default:
		return 0, apperrors.NewConfigError("unknown browser %q (expected firefox, chrome or safari)", s)
	}
}

// String returns the lower-case name of the browser kind.
func (b Browser) String() string {
	if name, ok := browserNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Browser(%d)", int(b))
}

// Capabilities is the declarative descriptor sent when opening a session.
// It is marshaled as the alwaysMatch member of a W3C new-session request.
type Capabilities map[string]any

// Capabilities builds the capabilities descriptor selecting this browser
// kind.
func (b Browser) Capabilities() Capabilities {
	return Capabilities{"browserName": b.String()}
}

// metadataExtension is the vendor-prefixed capability under which grid
// metadata travels. The grid reads it for identification only; it has no
// effect on the browser itself.
const metadataExtension = "webgrid:options"

// AttachMetadata places an identification metadata block under the grid's
// vendor extension capability. It fails only when the extension slot is
// already occupied by something that is not a key/value object.
func (c Capabilities) AttachMetadata(metadata map[string]string) error {
	if len(metadata) == 0 {
		return nil
	}
	opts, ok := c[metadataExtension].(map[string]any)
	if !ok {
		if _, present := c[metadataExtension]; present {
			return fmt.Errorf("capability %q is not an object", metadataExtension)
		}
		opts = map[string]any{}
		c[metadataExtension] = opts
	}
	opts["metadata"] = metadata
	return nil
}
