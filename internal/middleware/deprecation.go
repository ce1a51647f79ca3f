package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DeprecationWarning marks a legacy route as deprecated and points clients
// at its successor, RFC 8594 style.
func DeprecationWarning(successorPath string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Deprecation", "true")
		ctx.Header("Sunset", time.Now().AddDate(0, 6, 0).UTC().Format(http.TimeFormat))
		ctx.Header("Link", fmt.Sprintf("<%s>; rel=\"successor-version\"", successorPath))
		ctx.Next()
	}
}
