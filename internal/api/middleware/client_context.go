package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

const (
	ctxKeyClientID = "client_id"
	ctxKeySession  = "session"

	clientCookieMaxAge = 400 * 24 * time.Hour
)

// ClientContextConfig configures the client context cookie.
type ClientContextConfig struct {
	CookieName string
	Secure     bool
	Backend    ports.SessionBackend
}

// ClientContext identifies the browser by an opaque cookie and injects its
// session store into the context. A missing or malformed cookie starts a new
// client context.
func ClientContext(cfg ClientContextConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ctxKeyClientID, id)
			c.Set(ctxKeySession, session.NewStore(cfg.Backend, id))
			return next(c)
		}
	}
}

// ClientID returns the client context id injected by ClientContext.
func ClientID(c echo.Context) string {
	id, _ := c.Get(ctxKeyClientID).(string)
	return id
}

// Session returns the session store injected by ClientContext.
func Session(c echo.Context) (*session.Store, bool) {
	s, ok := c.Get(ctxKeySession).(*session.Store)
	return s, ok
}
