package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillswap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_ws_connections",
		Help: "Open real-time connections",
	})

	OnlineUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_online_users",
		Help: "Users with at least one open real-time connection",
	})

	WSEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_ws_events_total",
			Help: "Real-time events by type and direction",
		},
		[]string{"type", "direction"},
	)

	SwapRequestTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_swap_requests_total",
			Help: "Swap request lifecycle transitions",
		},
		[]string{"transition"},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			WSConnections,
			OnlineUsers,
			WSEventCounter,
			SwapRequestTransitions,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
