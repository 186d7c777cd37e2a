package monitoring

import (
	"strconv"
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
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "endpoint"},
	)

	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Completion requests sent to the LLM provider",
		},
		[]string{"model", "outcome"},
	)

	LLMDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of LLM completion requests",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	QuizAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_attempts_total",
			Help: "Graded quiz attempts",
		},
		[]string{"kind"},
	)

	ImprovementPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_improvement_percentage",
			Help:    "Improvement percentage computed on final quiz submission",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LLMRequests)
	prometheus.MustRegister(LLMDuration)
	prometheus.MustRegister(QuizAttempts)
	prometheus.MustRegister(ImprovementPercentage)
}

// ObserveLLMRequest records one completion call. outcome is ok, error or malformed.
func ObserveLLMRequest(model, outcome string, elapsed time.Duration) {
	LLMRequests.WithLabelValues(model, outcome).Inc()
	LLMDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}

// ObserveAttempt counts a graded attempt. kind is initial or final.
func ObserveAttempt(kind string) {
	QuizAttempts.WithLabelValues(kind).Inc()
}

func ObserveImprovement(pct float64) {
	ImprovementPercentage.Observe(pct)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
