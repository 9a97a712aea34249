package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sessionml/vmisknn/internal/sessionstore"
	"github.com/sessionml/vmisknn/internal/vmisknn"
)

func TestRouterServesRecommendEndpoint(t *testing.T) {
	pred := &stubPredictor{recs: []vmisknn.Recommendation{{Item: 5, Score: 0.9}}}
	h := newTestHandler(pred, sessionstore.NewMemoryStore())

	router, stop := NewRouter(h, RouterConfig{RateLimitDisabled: true})
	defer stop()

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/recommend?item_id=1&session_id=abc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("expected X-Request-ID header to be set by middleware")
	}
}

func TestRouterHealthz(t *testing.T) {
	h := newTestHandler(&stubPredictor{}, sessionstore.NewMemoryStore())
	router, stop := NewRouter(h, RouterConfig{RateLimitDisabled: true})
	defer stop()

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouterRateLimitsExcessRequests(t *testing.T) {
	h := newTestHandler(&stubPredictor{}, sessionstore.NewMemoryStore())
	router, stop := NewRouter(h, RouterConfig{RateLimitRequests: 1, RateLimitWindow: 1e9})
	defer stop()

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := srv.URL + "/v1/recommend?item_id=1&session_id=abc"
	first, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	first.Body.Close()

	second, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer second.Body.Close()

	if second.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected second request to be rate limited (429), got %d", second.StatusCode)
	}
}
