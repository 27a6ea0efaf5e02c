package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/huemcp/pkg/api/types"
	"github.com/urmzd/huemcp/pkg/hue"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	bridge hue.Bridge
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(bridge hue.Bridge) *HealthHandler {
	return &HealthHandler{bridge: bridge}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and bridge reachability
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	bridgeStatus := "reachable"
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.bridge.Ping(c.Request.Context()); err != nil {
		bridgeStatus = hue.Kind(err)
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Bridge:    bridgeStatus,
		Timestamp: time.Now(),
	})
}
