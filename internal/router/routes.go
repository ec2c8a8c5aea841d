package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/contact-finder/internal/config"
	"github.com/octobees/contact-finder/internal/handler"
	middlewarepkg "github.com/octobees/contact-finder/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health *handler.HealthHandler
	Lookup *handler.LookupHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", handlers.Health.Healthz)
	e.POST("/lookup", handlers.Lookup.Lookup, middlewarepkg.LookupRateLimiter(cfg.RateLimitLookup))
	e.GET("/history", handlers.Lookup.History)
}
