package monitoring

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

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordMutation("ADD_ICON", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.MutationsTotal.WithLabelValues("ADD_ICON")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MutationsTotal.WithLabelValues("ADD_ICON")))
	assert.Equal(t, 3.0, testutil.ToFloat64(a.IconsCurrent))
}

func TestTimerRecordsOutcome(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "updateLink").Stop(nil)
	NewTimer(m, "getManifestInformation").Stop(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("updateLink", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("getManifestInformation", StatusError)))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ActionsRun)
	assert.Equal(t, int64(1), snap.ActionsFailed)
}

func TestNilTimer(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTimer(nil, "resetStates").Stop(nil)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/state", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/state", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "manifestgen_http_requests_total")
	assert.Contains(t, w.Body.String(), "manifestgen_uptime_seconds")
}

func TestBackendAndAssets(t *testing.T) {
	m := NewMetrics()
	m.RecordBackendCall("manifests", StatusSuccess, 10*time.Millisecond)
	m.AddAssets(4)

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.BackendCalls)
	assert.Equal(t, int64(4), snap.GeneratedFiles)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.AssetsTotal))
}
