package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/api/metrics"
	"github.com/matchme/matchme-web/internal/core/ports"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/"

// RequireSession lets the request through only when the client context holds
// a token. Otherwise it answers 303 to the login page and the page handler
// never runs. Token validity is not checked.
func RequireSession(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store, ok := Session(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "missing client context")
			}

			authenticated, err := auth.IsAuthenticated(c.Request().Context(), store)
			if err != nil {
				return err
			}
			if !authenticated {
				metrics.GuardRedirectsTotal.Inc()
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			return next(c)
		}
	}
}
