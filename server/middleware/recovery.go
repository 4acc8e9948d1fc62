package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ignitor/logger"
)

// Recovery turns a handler panic into a logged 500 JSON response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Error("Panic recovered", map[string]interface{}{
				logger.FieldError: fmt.Sprintf("%v", rec),
				"stack":           string(debug.Stack()),
				"method":          c.Request.Method,
				logger.FieldPath:  c.Request.URL.Path,
				"request_id":      GetRequestID(c),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}()
		c.Next()
	}
}
