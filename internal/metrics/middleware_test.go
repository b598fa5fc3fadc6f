package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":[]}`))
	})
	r.Route("/tags/{user_id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"tags":[]}`))
		})
		r.Delete("/{tag_id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func serve(r http.Handler, method, path string) int {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr.Code
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/tags/{user_id}", "200"))

	serve(r, "GET", "/tags/alice/")
	serve(r, "GET", "/tags/bob/")

	got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/tags/{user_id}", "200"))
	if got-before != 2 {
		t.Errorf("requests for tag list pattern = %v, want 2 more", got-before)
	}
	if n := testutil.CollectAndCount(httpDuration); n == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_Status(t *testing.T) {
	r := newRouter()
	tests := []struct {
		method, path, route, status string
	}{
		{"POST", "/search", "/search", "200"},
		{"DELETE", "/tags/alice/t1", "/tags/{user_id}/{tag_id}", "204"},
		{"GET", "/boom", "/boom", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequests.WithLabelValues(tc.method, tc.route, tc.status))
			serve(r, tc.method, tc.path)
			after := testutil.ToFloat64(httpRequests.WithLabelValues(tc.method, tc.route, tc.status))
			if after-before != 1 {
				t.Errorf("%s %s: counter delta = %v, want 1", tc.method, tc.path, after-before)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", unmatchedRoute, "404"))
	if code := serve(r, "GET", "/nope/123"); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", unmatchedRoute, "404"))
	if after-before != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", after-before)
	}
}

func TestMiddleware_InFlightSettles(t *testing.T) {
	serve(newRouter(), "POST", "/search")
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in flight = %v, want 0", v)
	}
}

func TestEngineMetricsExposed(t *testing.T) {
	RegisterEngineMetrics()
	RegisterEngineMetrics()
	EngineRetriesTotal.WithLabelValues("search").Inc()

	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	for _, name := range []string{"companysearch_engine_retries_total", "companysearch_http_requests_in_flight"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output lacks %s", name)
		}
	}
}
