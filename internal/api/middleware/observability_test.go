package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/rxradar/backend/internal/infrastructure/observability"
)

func collectRequestMetrics(t *testing.T) (*observability.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)
	return metrics, reader
}

func requestCountRoutes(rm metricdata.ResourceMetrics) []string {
	var routes []string
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "http.server.request.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("http.route")); ok {
					routes = append(routes, v.AsString())
				}
			}
		}
	}
	return routes
}

func TestObservabilityMiddleware_RecordsMatchedRoutePattern(t *testing.T) {
	metrics, reader := collectRequestMetrics(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{username}/medications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ObservabilityMiddleware(metrics)(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/margaret/medications", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	routes := requestCountRoutes(rm)
	require.Len(t, routes, 1)
	// The route label is the registered pattern, not the per-user path.
	assert.Equal(t, "GET /api/users/{username}/medications", routes[0])
}

func TestObservabilityMiddleware_UnmatchedRequestFallsBackToPath(t *testing.T) {
	metrics, reader := collectRequestMetrics(t)

	mux := http.NewServeMux()
	handler := ObservabilityMiddleware(metrics)(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	routes := requestCountRoutes(rm)
	require.Len(t, routes, 1)
	assert.Equal(t, "/no/such/route", routes[0])
}
