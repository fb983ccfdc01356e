package http

import (
	"net/http"

	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/pkg/utils"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// RegisterRoutes registers the health route on the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"app":       h.cfg.App.Name,
		"version":   h.cfg.App.Version,
		"timestamp": utils.TimeNowRiyadh(),
	})
}
