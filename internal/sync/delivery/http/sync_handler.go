package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gcc-market-sync/internal/entity"
	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/internal/sync/repository"
	"gcc-market-sync/internal/sync/service"
	"gcc-market-sync/pkg/auth"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/utils"

	"github.com/labstack/echo/v4"
)

// SyncHandler exposes the two refresh entry points: the cron hook
// authenticated by a static secret and the admin manual trigger
// authenticated by JWT.
type SyncHandler struct {
	cfg          *config.Config
	logger       *logger.Logger
	refreshSvc   service.RefreshService
	cache        service.Cache
	tokens       *auth.TokenManager
	auditLogRepo repository.AuditLogRepository
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(
	cfg *config.Config,
	log *logger.Logger,
	refreshSvc service.RefreshService,
	cache service.Cache,
	tokens *auth.TokenManager,
	auditLogRepo repository.AuditLogRepository,
) *SyncHandler {
	return &SyncHandler{
		cfg:          cfg,
		logger:       log,
		refreshSvc:   refreshSvc,
		cache:        cache,
		tokens:       tokens,
		auditLogRepo: auditLogRepo,
	}
}

// RegisterRoutes registers the sync routes on the Echo instance.
func (h *SyncHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/cron/refresh", h.CronRefresh)
	e.POST("/api/admin/trigger-sync", h.TriggerSync)
}

// CronRefresh runs one refresh cycle for the external scheduler. The
// bearer token is compared against the static cron secret.
func (h *SyncHandler) CronRefresh(c echo.Context) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if h.cfg.Sync.CronSecret == "" || authHeader != "Bearer "+h.cfg.Sync.CronSecret {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}

	h.logger.Info("Starting automated data refresh")
	return h.runCycle(c)
}

// TriggerSync runs one refresh cycle on demand for an admin, then
// flushes the cache explicitly and records the action in the audit log.
func (h *SyncHandler) TriggerSync(c echo.Context) error {
	claims, err := h.bearerClaims(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	if claims.Role != auth.RoleAdmin {
		return c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
	}

	h.logger.Info("Manual sync triggered by admin", logger.StringField("email", claims.Email))

	ctx := c.Request().Context()
	h.audit(ctx, claims, c.RealIP())

	err = h.runCycle(c)

	if flushErr := h.cache.FlushAll(ctx); flushErr != nil {
		h.logger.Error("Failed to flush cache", logger.ErrorField(flushErr))
	}
	return err
}

// runCycle executes a refresh under the cycle ceiling and renders the
// shared response shape. The orchestrator reports failures inside the
// result, so a non-2xx here means something truly unexpected.
func (h *SyncHandler) runCycle(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Sync.CycleTimeout)
	defer cancel()

	result := h.refreshSvc.RefreshAll(ctx)

	if err := ctx.Err(); err == context.DeadlineExceeded {
		return c.JSON(http.StatusInternalServerError, dto.SyncErrorResponse{
			Success:   false,
			Error:     "refresh cycle exceeded time limit",
			Timestamp: utils.TimeNowRiyadh(),
		})
	}

	return c.JSON(http.StatusOK, dto.SyncResponse{
		Success:   result.Success,
		Timestamp: utils.TimeNowRiyadh(),
		Results: dto.SyncResults{
			StocksUpdated: result.StocksUpdated,
			NewsAdded:     result.NewsAdded,
			Errors:        result.Errors,
		},
	})
}

func (h *SyncHandler) bearerClaims(c echo.Context) (*auth.Claims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, auth.ErrInvalidToken
	}
	return h.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
}

func (h *SyncHandler) audit(ctx context.Context, claims *auth.Claims, ip string) {
	details, _ := json.Marshal(map[string]string{"email": claims.Email})
	err := h.auditLogRepo.Create(ctx, &entity.AuditLog{
		UserID:     utils.ToPointer(claims.UserID),
		Action:     "trigger_sync",
		EntityType: "sync",
		Details:    details,
		IPAddress:  ip,
	})
	if err != nil {
		h.logger.Error("Failed to write audit log", logger.ErrorField(err))
	}
}
