package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"webbridge/internal/bridge"
	"webbridge/internal/infrastructure/monitoring"
	"webbridge/internal/searx"
	"webbridge/internal/service"
	"webbridge/internal/shared/id"
	"webbridge/internal/shared/types"
	"webbridge/internal/shared/utils"
	"webbridge/internal/version"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	bridge   *bridge.Bridge
	searx    *searx.Checker
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, b *bridge.Bridge, checker *searx.Checker, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		bridge:   b,
		searx:    checker,
		metrics:  metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": version.Name,
		"version": version.Version,
	})
}

// Health handles detailed health check. The worker runtime is re-resolved on
// every call, so a freshly installed crawl4ai shows up without a restart.
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"bridge": gin.H{
			"script":      h.bridge.Script(),
			"runtime":     h.bridge.ResolveRuntime(c.Request.Context()).String(),
			"invocations": h.bridge.Diagnostics().Total(),
		},
	}
	if h.searx != nil {
		resp["searx"] = h.searx.Check(c.Request.Context())
	}
	if h.metrics != nil {
		resp["uptime_seconds"] = h.metrics.UptimeSeconds()
	}
	c.JSON(http.StatusOK, resp)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		if cat != types.CategoryWeb && cat != types.CategorySystem {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown category: %s", categoryStr)})
			return
		}
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers relevant services for a request
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateString(req.Message, "message", 1, utils.MaxDescriptionLength, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	services := h.registry.Discover(req.Message, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Message,
		"services": services,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appCtx := &types.Context{
		InvocationID: id.NewRequestID().String(),
		CallerID:     req.CallerID,
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MetricsJSON reports the aggregated metrics snapshot
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	snap := h.metrics.GetSnapshot()
	avgDuration := 0.0
	if snap.RequestCount > 0 {
		avgDuration = snap.TotalDuration / float64(snap.RequestCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_requests":     snap.TotalRequests,
		"total_errors":       snap.TotalErrors,
		"total_invocations":  snap.TotalInvocations,
		"failed_invocations": snap.FailedInvocations,
		"active_connections": snap.ActiveConnections,
		"avg_duration_s":     avgDuration,
		"uptime_seconds":     h.metrics.UptimeSeconds(),
	})
}
