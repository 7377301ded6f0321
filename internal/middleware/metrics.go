package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// EngagementEvents counts recorded engagement events by kind (view, like, unlike, comment, reply, share).
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_engagement_events_total",
		Help: "Total number of engagement events recorded",
	}, []string{"kind"})

	// NotificationsCreated counts notifications created by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_notifications_created_total",
		Help: "Total number of notifications created",
	}, []string{"type"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
