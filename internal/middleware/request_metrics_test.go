package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/squatcoach/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	metricsManager, reg := metrics.NewTestManagerAndRegistry()

	r := mux.NewRouter()
	r.HandleFunc("/api/clients/{id}/history", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {}).Methods("GET").Name("health")
	r.Use(RequestMetrics(metricsManager))

	for _, path := range []string{"/api/clients/a/history", "/api/clients/b/history", "/health"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "200")))

	// one series per route template, not per client
	families, err := reg.Gather()
	require.NoError(t, err)
	var routes []string
	for _, mf := range families {
		if mf.GetName() != "backend_test_server_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes = append(routes, l.GetValue())
				}
			}
		}
	}
	assert.ElementsMatch(t, []string{"/api/clients/{id}/history", "health"}, routes)
}
