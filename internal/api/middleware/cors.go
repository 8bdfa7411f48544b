// Package middleware holds gin middleware shared by the monitoring API
// (internal/api), grounded on the teacher's internal/api/middleware package.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS allows any origin to read the read-only status endpoints. The
// teacher's cmd/api/main.go wires a middleware.CORS() that was not part of
// the retrieved snapshot; the teacher's go.mod does declare
// github.com/rs/cors as a direct dependency, so this reconstructs the call
// the way that import implies rather than reaching for gin's own cors
// contrib package.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
	wrapped := c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	return func(ctx *gin.Context) {
		wrapped.ServeHTTP(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
