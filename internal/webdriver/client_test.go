package webdriver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGrid is a minimal wire-protocol remote end recording the requests it
// receives.
type fakeGrid struct {
	t        *testing.T
	mux      *http.ServeMux
	requests []string
}

func newFakeGrid(t *testing.T) *fakeGrid {
	return &fakeGrid{t: t, mux: http.NewServeMux()}
}

func (g *fakeGrid) handle(pattern string, status int, value any) {
	g.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		g.requests = append(g.requests, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(map[string]any{"value": value}); err != nil {
			g.t.Errorf("encoding response: %v", err)
		}
	})
}

func (g *fakeGrid) client(t *testing.T) (*HTTPClient, Session) {
	t.Helper()
	srv := httptest.NewServer(g.mux)
	t.Cleanup(srv.Close)

	g.handle("POST /session", http.StatusOK, map[string]string{"sessionId": "sess-1"})

	c := NewHTTPClient(srv.URL, 5*time.Second)
	t.Cleanup(func() { _ = c.Close() })

	sess, err := c.NewSession(context.Background(), BrowserFirefox.Capabilities())
	require.NoError(t, err)
	require.Equal(t, "sess-1", sess.ID())
	return c, sess
}

func TestNewSession_SendsCapabilitiesEnvelope(t *testing.T) {
	var captured map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"value": map[string]string{"sessionId": "s"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	defer c.Close()

	caps := BrowserChrome.Capabilities()
	require.NoError(t, caps.AttachMetadata(map[string]string{"name": "gridsmoke"}))
	_, err := c.NewSession(context.Background(), caps)
	require.NoError(t, err)

	am := captured["capabilities"].(map[string]any)["alwaysMatch"].(map[string]any)
	assert.Equal(t, "chrome", am["browserName"])
	opts := am["webgrid:options"].(map[string]any)
	assert.Equal(t, "gridsmoke", opts["metadata"].(map[string]any)["name"])
}

func TestNewSession_MissingSessionID(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session", http.StatusOK, map[string]string{})
	srv := httptest.NewServer(g.mux)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	defer c.Close()

	_, err := c.NewSession(context.Background(), BrowserFirefox.Capabilities())
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "session not created", perr.Code)
}

func TestNewSession_ProtocolError(t *testing.T) {
	g := newFakeGrid(t)
	g.mux.HandleFunc("POST /session", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": map[string]string{
				"error":   "session not created",
				"message": "no node available",
			},
		})
	})
	srv := httptest.NewServer(g.mux)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	defer c.Close()

	_, err := c.NewSession(context.Background(), BrowserFirefox.Capabilities())
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "session not created", perr.Code)
	assert.Equal(t, "no node available", perr.Message)
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
}

func TestSession_NavigateAndTitle(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/url", http.StatusOK, nil)
	g.handle("GET /session/sess-1/title", http.StatusOK, "Horrible looking test-page")
	_, sess := g.client(t)

	ctx := context.Background()
	require.NoError(t, sess.Navigate(ctx, "https://example.com/"))

	title, err := sess.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Horrible looking test-page", title)
}

func TestSession_FindElement(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/element", http.StatusOK,
		map[string]string{webElementKey: "elem-9"})
	g.handle("GET /session/sess-1/element/elem-9/text", http.StatusOK, "hello")
	_, sess := g.client(t)

	ctx := context.Background()
	el, err := sess.FindElement(ctx, ByCSSSelector, "#headline")
	require.NoError(t, err)

	text, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestSession_FindElement_NoSuchElement(t *testing.T) {
	g := newFakeGrid(t)
	g.mux.HandleFunc("POST /session/sess-1/element", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": map[string]string{"error": "no such element", "message": "not found"},
		})
	})
	_, sess := g.client(t)

	_, err := sess.FindElement(context.Background(), ByCSSSelector, "#missing")
	assert.True(t, IsNoSuchElement(err), "expected a no-such-element protocol error, got %v", err)
}

func TestSession_FindElements(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/elements", http.StatusOK,
		[]map[string]string{{webElementKey: "a"}, {webElementKey: "b"}})
	_, sess := g.client(t)

	elems, err := sess.FindElements(context.Background(), ByCSSSelector, ".result__a")
	require.NoError(t, err)
	assert.Len(t, elems, 2)
}

func TestSession_SetImplicitWait(t *testing.T) {
	var captured map[string]any
	g := newFakeGrid(t)
	g.mux.HandleFunc("POST /session/sess-1/timeouts", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"value": nil})
	})
	_, sess := g.client(t)

	require.NoError(t, sess.SetImplicitWait(context.Background(), 0))
	assert.Equal(t, float64(0), captured["implicit"])
}

func TestSession_AddCookie(t *testing.T) {
	var captured map[string]any
	g := newFakeGrid(t)
	g.mux.HandleFunc("POST /session/sess-1/cookie", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"value": nil})
	})
	_, sess := g.client(t)

	require.NoError(t, sess.AddCookie(context.Background(), "webgrid:message", "Doing step 1"))
	cookie := captured["cookie"].(map[string]any)
	assert.Equal(t, "webgrid:message", cookie["name"])
	assert.Equal(t, "Doing step 1", cookie["value"])
}

func TestSession_Close(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("DELETE /session/sess-1", http.StatusOK, nil)
	_, sess := g.client(t)

	require.NoError(t, sess.Close(context.Background()))
	assert.Contains(t, g.requests, "DELETE /session/sess-1")
}

func TestElement_SendKeys_PreservesMultiByteInput(t *testing.T) {
	const input = "🛋🥔"
	var captured map[string]string

	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/element", http.StatusOK,
		map[string]string{webElementKey: "elem-1"})
	g.mux.HandleFunc("POST /session/sess-1/element/elem-1/value", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"value": nil})
	})
	_, sess := g.client(t)

	ctx := context.Background()
	el, err := sess.FindElement(ctx, ByCSSSelector, "#echo")
	require.NoError(t, err)
	require.NoError(t, el.SendKeys(ctx, input))

	assert.Equal(t, input, captured["text"])
}

func TestElement_AttributeAndProperty(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/element", http.StatusOK,
		map[string]string{webElementKey: "elem-1"})
	g.handle("GET /session/sess-1/element/elem-1/attribute/value", http.StatusOK, "typed")
	g.handle("GET /session/sess-1/element/elem-1/property/value", http.StatusOK, nil)
	_, sess := g.client(t)

	ctx := context.Background()
	el, err := sess.FindElement(ctx, ByCSSSelector, "#echo")
	require.NoError(t, err)

	attr, err := el.Attribute(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "typed", attr)

	// A null property decodes to the empty string, not an error.
	prop, err := el.Property(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "", prop)
}

func TestElement_Click(t *testing.T) {
	g := newFakeGrid(t)
	g.handle("POST /session/sess-1/element", http.StatusOK,
		map[string]string{webElementKey: "elem-1"})
	g.handle("POST /session/sess-1/element/elem-1/click", http.StatusOK, nil)
	_, sess := g.client(t)

	ctx := context.Background()
	el, err := sess.FindElement(ctx, ByCSSSelector, "#increment")
	require.NoError(t, err)
	require.NoError(t, el.Click(ctx))
	assert.Contains(t, g.requests, "POST /session/sess-1/element/elem-1/click")
}

func TestDo_TransportError(t *testing.T) {
	// Endpoint with nothing listening.
	c := NewHTTPClient("http://127.0.0.1:1", 500*time.Millisecond)
	defer c.Close()

	_, err := c.NewSession(context.Background(), BrowserFirefox.Capabilities())
	require.Error(t, err)
	var perr *ProtocolError
	assert.False(t, errors.As(err, &perr), "transport failures must not map to protocol errors")
}
