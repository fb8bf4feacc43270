package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/database"
	"github.com/feedbackboard/backend/internal/types"
)

// Pinger is satisfied by cache.VoteCountCache
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache Pinger
}

// NewHealthHandler returns a health handler. cache may be nil.
func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

// Health reports database and cache reachability. Only the database decides
// the status code.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := types.HealthResponse{Status: "ok", Database: "ok", Cache: "disabled"}
	status := http.StatusOK

	if err := database.HealthCheck(ctx, h.db); err != nil {
		_ = c.Error(err)
		resp.Status, resp.Database = "unavailable", "unavailable"
		status = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			_ = c.Error(err)
			resp.Cache = "unavailable"
		}
	}
	c.JSON(status, resp)
}
