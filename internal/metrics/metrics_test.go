package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("scrape status = %d, want %d", w.Code, http.StatusOK)
	}
	body, err := io.ReadAll(w.Result().Body)
	if err != nil {
		t.Fatalf("reading scrape body: %v", err)
	}
	return string(body)
}

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/games", http.StatusOK, 10*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/games", http.StatusOK, 20*time.Millisecond)

	body := scrape(t, reg)
	want := `gamestore_http_requests_total{method="GET",route="/games",status="200"} 2`
	if !strings.Contains(body, want) {
		t.Errorf("scrape missing %q", want)
	}
	if !strings.Contains(body, `gamestore_http_request_duration_seconds_count{method="GET",route="/games"} 2`) {
		t.Error("latency histogram should have two observations")
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Delete("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/categories", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	body := scrape(t, reg)
	for _, want := range []string{
		`gamestore_http_requests_total{method="DELETE",route="/categories",status="409"} 1`,
		`gamestore_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		"gamestore_http_requests_in_flight 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(http.MethodPost, "/users", http.StatusCreated, time.Millisecond)

	if !strings.Contains(scrape(t, reg), "gamestore_http_requests_total") {
		t.Error("response should contain gamestore_http_requests_total")
	}
}
