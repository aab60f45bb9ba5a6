package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves liveness and readiness endpoints.
type Handler struct {
	db      *gorm.DB
	service string
}

// NewHandler creates a health Handler for the service.
func NewHandler(db *gorm.DB, service string) *Handler {
	return &Handler{db: db, service: service}
}

// RegisterRoutes registers /healthz and /readyz.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Liveness reports that the process is up.
func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}

// Readiness reports whether the booking store is reachable.
func (h *Handler) Readiness(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": h.service})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}
