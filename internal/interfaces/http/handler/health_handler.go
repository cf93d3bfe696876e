package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/infrastructure/persistence"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// HealthHandler reports service readiness
type HealthHandler struct {
	BaseHandler
	db    *persistence.Database
	redis *redis.Client
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *persistence.Database, rdb *redis.Client, log *zap.Logger) *HealthHandler {
	return &HealthHandler{BaseHandler: NewBaseHandler(log), db: db, redis: rdb}
}

// Check pings the database and cache and reports their status
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"status": "ok", "database": "ok", "cache": "ok"}
	healthy := true

	if err := h.db.Ping(); err != nil {
		status["database"] = "unreachable"
		healthy = false
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(status))
		return
	}
	h.Success(c, status)
}
