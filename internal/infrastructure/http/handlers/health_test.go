package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	up := PingerFunc(func(context.Context) error { return nil })
	down := PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
		wantBody string
	}{
		{"all up", map[string]Pinger{"session": up, "backend": up}, http.StatusOK, "ok"},
		{"backend down", map[string]Pinger{"session": up, "backend": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tc.deps).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantBody {
				t.Fatalf("expected status %q, got %q", tc.wantBody, resp.Status)
			}
			if len(resp.Dependencies) != len(tc.deps) {
				t.Fatalf("expected %d dependencies, got %+v", len(tc.deps), resp.Dependencies)
			}
		})
	}
}
