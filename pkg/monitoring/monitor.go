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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	RowsAppended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "survey_rows_appended_total",
			Help: "Rows appended to the results CSV",
		},
	)

	SaveFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_save_failures_total",
			Help: "Rejected or failed /save requests",
		},
		[]string{"reason"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Survey form submissions forwarded to the save endpoint",
		},
		[]string{"result"},
	)

	Archives = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_archives_total",
			Help: "CSV snapshots uploaded to storage",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

// Init 可重复调用, 只注册一次
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(RowsAppended)
		prometheus.MustRegister(SaveFailures)
		prometheus.MustRegister(Submissions)
		prometheus.MustRegister(Archives)
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
