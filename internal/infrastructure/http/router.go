package http

import (
	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/infrastructure/http/handlers"
)

// RegisterProbes adds the liveness and readiness probes to e. They run
// outside the client context and the session guard.
func RegisterProbes(e *echo.Echo, deps map[string]handlers.Pinger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
}
