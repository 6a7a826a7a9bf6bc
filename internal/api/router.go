package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/api/handler"
	"github.com/matchme/matchme-web/internal/api/middleware"
	"github.com/matchme/matchme-web/internal/api/view"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/core/service"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
	infrahttp "github.com/matchme/matchme-web/internal/infrastructure/http"
	"github.com/matchme/matchme-web/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger   zerolog.Logger
	Backend  *backend.Client
	Sessions ports.SessionBackend

	CookieName   string
	CookieSecure bool

	PageCacheSize int
	PageStateTTL  time.Duration

	// Registerer and Gatherer enable HTTP metrics and /metrics. Both nil
	// leaves metrics off.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = view.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "matchme_web",
			Subsystem:  "http",
			Registerer: d.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
	if d.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	}

	// --- Dependencies ---
	env := &handler.Env{
		Backend: d.Backend,
		Pages:   handler.NewPageCache(d.PageCacheSize, d.PageStateTTL),
		Logger:  d.Logger,
	}
	authService := service.NewAuthService(d.Logger)
	clientContext := middleware.ClientContext(middleware.ClientContextConfig{
		CookieName: d.CookieName,
		Secure:     d.CookieSecure,
		Backend:    d.Sessions,
	})
	guard := middleware.RequireSession(authService)

	authHandler := handler.NewAuthHandler(env, authService)
	userHandler := handler.NewUserHandler(env)
	bioHandler := handler.NewBioHandler(env)
	preferenceHandler := handler.NewPreferenceHandler(env)
	profileHandler := handler.NewProfileHandler(env)
	weightHandler := handler.NewWeightHandler(env)

	// --- Public pages ---
	e.GET("/", authHandler.LoginPage, clientContext)
	e.POST("/", authHandler.Login, clientContext)
	e.GET("/register", authHandler.RegisterPage, clientContext)
	e.POST("/register", authHandler.Register, clientContext)

	// --- Guarded pages ---
	e.GET("/user", userHandler.Show, clientContext, guard)

	e.GET("/bioedit", bioHandler.Show, clientContext, guard)
	e.POST("/bioedit/about", bioHandler.SaveAbout, clientContext, guard)
	e.POST("/bioedit/birthday", bioHandler.SaveBirthday, clientContext, guard)

	e.GET("/preferenceedit", preferenceHandler.Show, clientContext, guard)
	e.POST("/preferenceedit/:category/:code", preferenceHandler.Toggle, clientContext, guard)

	e.GET("/profileedit", profileHandler.Show, clientContext, guard)
	e.POST("/profileedit", profileHandler.SaveAll, clientContext, guard)
	e.POST("/profileedit/:field", profileHandler.SaveField, clientContext, guard)

	e.GET("/weightedit", weightHandler.Show, clientContext, guard)
	e.POST("/weightedit/:kind", weightHandler.Save, clientContext, guard)

	// --- Health probes (no auth required) ---
	infrahttp.RegisterProbes(e, map[string]handlers.Pinger{
		"session": d.Sessions,
		"backend": d.Backend,
	})

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			} else {
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
