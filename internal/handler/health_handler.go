package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plagrelay/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	upstream *config.UpstreamConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(upstream *config.UpstreamConfig) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The relay is ready once it can
// authenticate against the provider.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.upstream.CheckCredentials(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"organization_api": h.upstream.HasOrganizationCredentials(),
	})
}
