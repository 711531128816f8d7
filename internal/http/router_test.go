package http

import (
	"net/http"
	"testing"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/http/handlers"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/testutil"
)

func TestRouterRoutes(t *testing.T) {
	h := handlers.NewHandler([]parks.Park{testutil.SamplePark("Big Park", "park-1")}, nil, nil, nil, nil)
	router := NewRouter(h, nil, metrics.NewRecorder())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/parks", http.StatusOK},
		{http.MethodGet, "/parks/park-1/schedule", http.StatusServiceUnavailable},
		{http.MethodGet, "/parks/missing/waits", http.StatusNotFound},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rr := testutil.Serve(router, tt.method, tt.path, nil)
		testutil.AssertStatus(t, rr, tt.want)
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s %s: expected request id header", tt.method, tt.path)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s %s: expected json body, got %q", tt.method, tt.path, ct)
		}
	}
}
