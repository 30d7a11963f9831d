package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prompthub_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedbackTransitions counts feedback state transitions applied by the
	// reconciliation engine, labeled by transition kind (create/toggle/switch).
	FeedbackTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prompthub_feedback_transitions_total",
		Help: "Total feedback state transitions by kind",
	}, []string{"transition"})

	// FeedbackConflicts counts feedback applications lost to a concurrent
	// first-reaction race and reported as retryable conflicts.
	FeedbackConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompthub_feedback_conflicts_total",
		Help: "Total feedback applications rejected due to uniqueness races",
	})
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
