package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/api/middleware"
	"github.com/matchme/matchme-web/internal/api/view"
	"github.com/matchme/matchme-web/internal/apitest"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

const (
	cookieName = "matchme_client"
	clientID   = "5f0e9a64-2d8b-4c1e-9b5a-0c7d2e3f4a5b"
)

// harness runs handlers the way the router does: behind ClientContext with
// a fixed client cookie, against the fake backend.
type harness struct {
	e        *echo.Echo
	env      *Env
	fake     *apitest.Backend
	sessions *session.MemoryBackend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := apitest.New(t)

	e := echo.New()
	e.Renderer = view.NewRenderer()
	e.Validator = NewValidator()

	return &harness{
		e: e,
		env: &Env{
			Backend: backend.NewClient(backend.Config{BaseURL: fake.URL(), Timeout: 2 * time.Second}, zerolog.Nop()),
			Pages:   NewPageCache(16, time.Minute),
			Logger:  zerolog.Nop(),
		},
		fake:     fake,
		sessions: session.NewMemoryBackend(),
	}
}

// loggedIn stores the fake's token for the test client.
func (h *harness) loggedIn(t *testing.T) *harness {
	t.Helper()
	if err := session.NewStore(h.sessions, clientID).Set(context.Background(), h.fake.Token); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return h
}

// try runs handler for a request and returns what it left unhandled.
// params are name/value pairs of path parameters.
func (h *harness) try(t *testing.T, method, target string, form url.Values, handler echo.HandlerFunc, params ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: cookieName, Value: clientID})

	rec := httptest.NewRecorder()
	c := h.e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	mw := middleware.ClientContext(middleware.ClientContextConfig{CookieName: cookieName, Backend: h.sessions})
	return rec, mw(handler)(c)
}

// serve runs handler like try and fails the test on an unhandled error.
func (h *harness) serve(t *testing.T, method, target string, form url.Values, handler echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	rec, err := h.try(t, method, target, form, handler, params...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func assertCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Fatalf("expected %q in body:\n%s", w, body)
		}
	}
}

func newFormRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}
