package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_http_requests_total",
			Help: "Total number of HTTP requests processed by the admin service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	adminOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_operations_total",
			Help: "Total number of admin operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
	usersDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_users_deleted_total",
			Help: "Total number of user deletion cascades run.",
		},
	)
	migrationAccountsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_migration_accounts_total",
			Help: "Directory accounts handled by the backfill migration.",
		},
		[]string{"outcome"},
	)
	hookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_account_hook_events_total",
			Help: "Account lifecycle events handled by the provisioning hook.",
		},
		[]string{"outcome"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		adminOpsTotal,
		usersDeletedTotal,
		migrationAccountsTotal,
		hookEventsTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncAdminOp(operation, outcome string) {
	adminOpsTotal.WithLabelValues(operation, outcome).Inc()
}

func IncUsersDeleted() {
	usersDeletedTotal.Inc()
}

func IncMigrationAccount(outcome string) {
	migrationAccountsTotal.WithLabelValues(outcome).Inc()
}

func IncHookEvent(outcome string) {
	hookEventsTotal.WithLabelValues(outcome).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
