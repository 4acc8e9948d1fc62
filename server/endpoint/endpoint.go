// Package endpoint provides the probe handlers every server exposes:
// /health, /alive and /info.
package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ignitor/component"
	"github.com/kbukum/ignitor/version"
)

var startTime = time.Now()

// Health answers with the overall and per-component health. An unhealthy
// component turns the answer into a 503; degraded still answers 200.
func Health(serviceName string, checker component.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reports []component.Health
		if checker != nil {
			reports = checker(c.Request.Context())
		}
		status := component.Overall(reports)

		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": reports,
		})
	}
}

// Liveness answers 200 while the process can serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive", "service": serviceName})
	}
}

// Info reports the build version and the uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    version.Short(),
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"release":    v.IsRelease,
			"uptime":     time.Since(startTime).Round(time.Second).String(),
		})
	}
}

// Register mounts the three probes on r.
func Register(r gin.IRoutes, serviceName string, checker component.HealthChecker) {
	r.GET("/health", Health(serviceName, checker))
	r.GET("/alive", Liveness(serviceName))
	r.GET("/info", Info(serviceName))
}
