package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorView is what the error page shows.
type errorView struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Keeps the status code of *echo.HTTPError (404 from the router, bad forms).
//   - Logs every other error internally without leaking details to the client.
//   - Renders the error page, falling back to plain text when rendering fails.
//
// Page errors (validation, backend answers) never get here; pages show them inline.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if rerr := c.Render(code, "error", errorView{Code: code, Message: msg}); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Warn().Err(he.Internal).Int("status", he.Code).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again."
}
