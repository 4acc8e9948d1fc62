package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ignitor/logger"
)

var quietPaths = map[string]bool{
	"/health": true,
	"/alive":  true,
}

// RequestLogger logs each request once it completes. 5xx responses log at
// error level, 4xx at warn and the rest at debug. Probe paths are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":             c.Request.Method,
			logger.FieldPath:     c.Request.URL.Path,
			"route":              c.FullPath(),
			"status":             status,
			logger.FieldDuration: time.Since(start).Milliseconds(),
		}
		if id := GetRequestID(c); id != "" {
			fields["request_id"] = id
		}
		if len(c.Errors) > 0 {
			fields[logger.FieldError] = c.Errors.String()
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}
