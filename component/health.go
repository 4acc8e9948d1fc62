package component

import "context"

// HealthStatus is the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is one component's health report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Overall folds reports into a single status: any unhealthy report wins,
// then any degraded one. No reports is healthy.
func Overall(reports []Health) HealthStatus {
	status := StatusHealthy
	for _, h := range reports {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// HealthChecker reports the health of a set of components.
type HealthChecker func(ctx context.Context) []Health
