package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/progress/:topic", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/progress/:topic", "200"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/progress/Graphs", nil))

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/progress/:topic", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveLLMRequest(t *testing.T) {
	before := testutil.ToFloat64(LLMRequests.WithLabelValues("mock", "ok"))
	ObserveLLMRequest("mock", "ok", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(LLMRequests.WithLabelValues("mock", "ok")))
}
