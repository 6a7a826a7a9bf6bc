package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
)

const (
	defaultPageCacheSize = 4096
	defaultPageStateTTL  = 30 * time.Minute
)

var errInvalidForm = echo.NewHTTPError(http.StatusBadRequest, "invalid form")

// PageCache keeps page controllers between the requests of one client
// context, so drafts and inline errors survive a form post. Entries expire
// after ttl without use.
type PageCache struct {
	entries *expirable.LRU[string, any]
}

// NewPageCache returns a cache holding at most size pages.
func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size <= 0 {
		size = defaultPageCacheSize
	}
	if ttl <= 0 {
		ttl = defaultPageStateTTL
	}
	return &PageCache{entries: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Len reports the number of cached pages.
func (pc *PageCache) Len() int {
	return pc.entries.Len()
}

// Forget drops every page cached for the client context.
func (pc *PageCache) Forget(clientID string) {
	prefix := clientID + ":"
	for _, key := range pc.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			pc.entries.Remove(key)
		}
	}
}

func pageKey(clientID, name string) string {
	return clientID + ":" + name
}

// controller is what every page controller offers the handlers.
type controller interface {
	Mount(ctx context.Context) error
	NeedsMount() bool
}

// Env is what page handlers share.
type Env struct {
	Backend *backend.Client
	Pages   *PageCache
	Logger  zerolog.Logger
}

func (env *Env) api(c echo.Context) (ports.MatchMeAPI, string, error) {
	clientID, store, err := ctxSession(c)
	if err != nil {
		return nil, "", err
	}
	return backend.NewAPI(env.Backend, store), clientID, nil
}

// openPage builds a fresh controller for the client context, mounts it and
// caches it. A failed mount still yields the controller, whose view carries
// the error.
func openPage[P controller](c echo.Context, env *Env, name string, build func(ports.MatchMeAPI, zerolog.Logger) P) (P, error) {
	var zero P
	api, clientID, err := env.api(c)
	if err != nil {
		return zero, err
	}
	p := build(api, env.Logger)
	env.Pages.entries.Add(pageKey(clientID, name), p)
	return p, p.Mount(c.Request().Context())
}

// resumePage returns the cached controller of the client context, mounting
// a new one when none is cached or the cached one has no data.
func resumePage[P controller](c echo.Context, env *Env, name string, build func(ports.MatchMeAPI, zerolog.Logger) P) (P, error) {
	clientID, _, err := ctxSession(c)
	if err != nil {
		var zero P
		return zero, err
	}
	if cached, ok := env.Pages.entries.Get(pageKey(clientID, name)); ok {
		if p, ok := cached.(P); ok {
			if !p.NeedsMount() {
				return p, nil
			}
			return p, p.Mount(c.Request().Context())
		}
	}
	return openPage(c, env, name, build)
}

// statusFor maps the outcome of a page action onto the response code. Errors
// the page cannot show inline are returned for the HTTP error handler.
func statusFor(err error) (int, error) {
	var (
		ve *domain.ValidationError
		re *domain.RequestError
		ne *domain.NetworkError
		de *domain.DecodeError
	)
	switch {
	case err == nil:
		return http.StatusOK, nil
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, nil
	case errors.As(err, &re):
		// The backend refused the input, or failed on its own.
		if re.Status < http.StatusInternalServerError {
			return http.StatusUnprocessableEntity, nil
		}
		return http.StatusBadGateway, nil
	case errors.As(err, &ne), errors.As(err, &de):
		return http.StatusBadGateway, nil
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, nil
	case errors.Is(err, domain.ErrUnknownField):
		return 0, echo.NewHTTPError(http.StatusNotFound, "unknown field")
	}
	return 0, err
}

// render writes the page template with the status matching err.
func render(c echo.Context, name string, view any, err error) error {
	code, err := statusFor(err)
	if err != nil {
		return err
	}
	return c.Render(code, name, view)
}

func asValidation(err error) (*domain.ValidationError, bool) {
	var ve *domain.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
