// Package handlers implements the monitoring API's read-only endpoints,
// grounded on the teacher's internal/api/handlers package (one handler type
// per resource, a NewXHandler constructor, gin.Context-based methods).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wattctl/poet/pkg/control"
)

// StatusHandler serves the most recent controller snapshot. It never calls
// into control.Controller.ApplyControl; it only reads the snapshot the
// session's own mutex already guards (SPEC_FULL.md 8/9).
type StatusHandler struct {
	ctrl *control.Controller
}

// NewStatusHandler creates a status handler over ctrl.
func NewStatusHandler(ctrl *control.Controller) *StatusHandler {
	return &StatusHandler{ctrl: ctrl}
}

// GetStatus handles GET /status.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	snap := h.ctrl.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"tick":            snap.Tick,
		"last_id":         snap.LastID,
		"goal":            snap.Goal.ToFloat64(),
		"constraint_type": snap.ConstraintType.String(),
		"perf_x_hat":      snap.PerfXHat.ToFloat64(),
		"cost_x_hat":      snap.CostXHat.ToFloat64(),
	})
}

// GetHealth handles GET /health.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
