package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/api/middleware"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

// ctxSession extracts the client context injected by the ClientContext
// middleware. Its absence means the route was registered without it.
func ctxSession(c echo.Context) (clientID string, store *session.Store, err error) {
	store, ok := middleware.Session(c)
	if !ok {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "missing client context")
	}
	return middleware.ClientID(c), store, nil
}
