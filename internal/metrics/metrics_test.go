package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/services/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for range 2 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/abc", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/services/:id", "404"))
	assert.Equal(t, 2.0, got)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInflight))
}

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := New()

	m.ObserveSnapshot(10*time.Millisecond, nil)
	m.ObserveSnapshot(5*time.Millisecond, errors.New("store down"))
	m.ObserveSnapshot(time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshots.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshots.WithLabelValues("error")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSnapshot(time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "service_catalog_stats_snapshots_total")
}
