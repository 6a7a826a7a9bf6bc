package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/apitest"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

func newTestRouter(t *testing.T) (*echo.Echo, *apitest.Backend) {
	t.Helper()
	fake := apitest.New(t)
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Logger:     zerolog.Nop(),
		Backend:    backend.NewClient(backend.Config{BaseURL: fake.URL(), Timeout: 2 * time.Second}, zerolog.Nop()),
		Sessions:   session.NewMemoryBackend(),
		CookieName: "matchme_client",
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, fake
}

func serve(e *echo.Echo, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func clientCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "matchme_client" {
			return c
		}
	}
	t.Fatalf("no client cookie issued")
	return nil
}

func TestRouter_GuardRedirectsAnonymousVisitors(t *testing.T) {
	e, fake := newTestRouter(t)

	for _, path := range []string{"/user", "/bioedit", "/preferenceedit", "/profileedit", "/weightedit"} {
		rec := serve(e, http.MethodGet, path, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
			t.Fatalf("%s: expected 303 to /, got %d %q", path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	rec := serve(e, http.MethodPost, "/weightedit/age", url.Values{"value": {"9"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("guarded POST: expected 303, got %d", rec.Code)
	}
	if n := len(fake.Requests()); n != 0 {
		t.Fatalf("guarded pages must not reach the backend, got %d calls", n)
	}
}

func TestRouter_LoginThenBrowse(t *testing.T) {
	e, fake := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login page: expected 200, got %d", rec.Code)
	}
	cookie := clientCookie(t, rec)

	rec = serve(e, http.MethodPost, "/", url.Values{"username": {apitest.Username}, "password": {apitest.Password}}, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/user" {
		t.Fatalf("login: expected 303 to /user, got %d", rec.Code)
	}

	rec = serve(e, http.MethodGet, "/user", nil, cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Fatalf("user page: got %d\n%s", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodPost, "/weightedit/music", url.Values{"value": {"8"}}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("weight save: got %d", rec.Code)
	}
	if got := fake.Weight("music"); got != 8 {
		t.Fatalf("expected music weight 8, got %v", got)
	}

	for _, r := range fake.Calls(http.MethodGet, "/api/user") {
		if r.Authorization != "Bearer "+fake.Token {
			t.Fatalf("expected bearer token, got %q", r.Authorization)
		}
	}

	// Another browser has its own client context and is still anonymous.
	rec = serve(e, http.MethodGet, "/user", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("second client: expected 303, got %d", rec.Code)
	}
}

func TestRouter_NotFoundRendersErrorPage(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/nowhere", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Fatalf("expected the error page, got %s", rec.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	// The fake answers 404 on "/", which still proves it is reachable.
	if rec := serve(e, http.MethodGet, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	serve(e, http.MethodGet, "/", nil)
	rec := serve(e, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "matchme_web_http_requests_total") {
		t.Fatalf("metrics: got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MetricsDisabled(t *testing.T) {
	fake := apitest.New(t)
	e := NewRouter(Deps{
		Logger:     zerolog.Nop(),
		Backend:    backend.NewClient(backend.Config{BaseURL: fake.URL()}, zerolog.Nop()),
		Sessions:   session.NewMemoryBackend(),
		CookieName: "matchme_client",
	})

	if rec := serve(e, http.MethodGet, "/metrics", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a gatherer, got %d", rec.Code)
	}
}
