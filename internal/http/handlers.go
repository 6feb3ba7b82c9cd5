package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/systemapi/bridge/internal/infrastructure/monitoring"
	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/service"
	"github.com/systemapi/bridge/internal/shared/types"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	registry *service.Registry
	bridge   *native.Bridge
	locator  native.Locator
	metrics  *monitoring.Metrics
}

// NewHandlers creates a handler set.
func NewHandlers(registry *service.Registry, bridge *native.Bridge, locator native.Locator, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		bridge:   bridge,
		locator:  locator,
		metrics:  metrics,
	}
}

// Root handles the liveness check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "systemapi-bridge",
		"version": "0.1.0",
	})
}

// Health handles the detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"library":  libraryStatus(h.bridge.Manager()),
		"services": h.registry.Stats(),
	})
}

// ListServices lists registered services, optionally by category.
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if q := c.Query("category"); q != "" {
		cat := types.Category(q)
		category = &cat
	}

	services := h.registry.List(category)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// ExecuteService runs one tool. Operational failures are part of the
// result envelope; only malformed requests produce non-200 statuses.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, _ := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params)

	c.JSON(http.StatusOK, gin.H{
		"request_id": uuid.NewString(),
		"tool_id":    req.ToolID,
		"result":     result,
	})
}

// GetLibrary reports the library lifecycle state and the probe order.
func (h *Handlers) GetLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"library":    libraryStatus(h.bridge.Manager()),
		"candidates": h.locator.Candidates(),
	})
}

// ReloadLibrary re-runs the locator and forces a fresh load attempt.
func (h *Handlers) ReloadLibrary(c *gin.Context) {
	manager := h.bridge.Manager()
	defer h.metrics.SetLibraryLoaded(manager.Loaded())

	path, err := h.locator.Locate()
	if errors.Is(err, native.ErrLibraryNotFound) {
		manager.Unload()
		c.JSON(http.StatusNotFound, gin.H{
			"error":      err.Error(),
			"code":       types.CodeLibraryNotFound,
			"candidates": h.locator.Candidates(),
		})
		return
	}

	if err := manager.Reload(path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  types.CodeLoadFailed,
			"path":  path,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"library": libraryStatus(manager)})
}

// UnloadLibrary releases the handle; subsequent dispatches degrade to
// not_loaded results.
func (h *Handlers) UnloadLibrary(c *gin.Context) {
	manager := h.bridge.Manager()
	if err := manager.Unload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.metrics.SetLibraryLoaded(false)

	c.JSON(http.StatusOK, gin.H{"library": libraryStatus(manager)})
}

func libraryStatus(m *native.Manager) gin.H {
	status := m.Status()
	out := gin.H{
		"state":  status.State.String(),
		"loaded": status.State == native.StateLoaded,
	}
	if status.Path != "" {
		out["path"] = status.Path
	}
	if status.Err != nil {
		out["error"] = status.Err.Error()
	}
	return out
}
