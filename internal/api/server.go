// Package api exposes a read-only HTTP status surface over a running POET
// session, patterned on brianmickel-battery-backtest's internal/api
// (gin.Engine + middleware stack + grouped routes, cmd/api/main.go's
// router setup inlined as a constructor instead of a standalone main).
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wattctl/poet/internal/api/handlers"
	"github.com/wattctl/poet/internal/api/middleware"
	"github.com/wattctl/poet/pkg/control"
)

// NewRouter builds the monitoring API's gin.Engine over ctrl. It is purely
// observational: every handler only reads ctrl.Snapshot(), never mutates
// controller state (SPEC_FULL.md 8).
func NewRouter(ctrl *control.Controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", handlers.GetHealth)

	status := handlers.NewStatusHandler(ctrl)
	router.GET("/status", status.GetStatus)

	return router
}
