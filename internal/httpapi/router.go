package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sessionml/vmisknn/internal/metrics"
	"github.com/sessionml/vmisknn/internal/middleware"
)

// RouterConfig configures rate limiting for the recommend endpoint.
type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultRouterConfig returns sane request-rate defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// NewRouter builds the chi router serving /v1/recommend, instrumented
// with request ID propagation and Prometheus metrics, matching the
// teacher's middleware composition order (request ID, then metrics).
func NewRouter(h *Handler, cfg RouterConfig) (chi.Router, func()) {
	r := chi.NewRouter()

	wrap := func(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return mw(next.ServeHTTP)
		}
	}
	r.Use(wrap(middleware.RequestID))
	r.Use(wrap(middleware.PrometheusMetrics))

	var limiter *RateLimiter
	stop := func() {}
	if !cfg.RateLimitDisabled {
		limiter = NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		stop = limiter.Stop
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if !limiter.Allow(clientIP(req)) {
					metrics.APIRateLimitHits.WithLabelValues("/v1/recommend").Inc()
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
				next.ServeHTTP(w, req)
			})
		})
	}

	r.Get("/v1/recommend", h.ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r, stop
}
