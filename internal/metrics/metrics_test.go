package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePatternAndStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Post("/notifications/{id}/dismiss", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/notifications/{id}/dismiss", "404"))

	req := httptest.NewRequest(http.MethodPost, "/notifications/abc/dismiss", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/notifications/{id}/dismiss", "404"))
	if after != before+1 {
		t.Fatalf("expected counter to grow by 1, got %v -> %v", before, after)
	}
}

func TestCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("diagnosis", "hit"))
	misses := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("diagnosis", "miss"))

	CacheLookup("diagnosis", true)
	CacheLookup("diagnosis", false)
	CacheLookup("diagnosis", false)

	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("diagnosis", "hit")); got != hits+1 {
		t.Fatalf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("diagnosis", "miss")); got != misses+2 {
		t.Fatalf("misses = %v, want %v", got, misses+2)
	}
}
