package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the VMIS-kNN recommender:
// - predict latency and throughput
// - index build duration and size
// - neighbor/candidate pool sizes
// - session-store cache efficiency
// - HTTP endpoint latency and throughput

var (
	// PredictDuration tracks end-to-end Predict latency.
	PredictDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vmisknn_predict_duration_seconds",
			Help:    "Duration of predict calls in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		},
	)

	// PredictEmptyTotal counts predict calls that returned no recommendations.
	PredictEmptyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vmisknn_predict_empty_total",
			Help: "Total number of predict calls returning an empty result",
		},
	)

	// CandidatePoolSize observes the accumulator size after neighbor-finding.
	CandidatePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vmisknn_candidate_pool_size",
			Help:    "Number of sessions admitted to the neighbor-finder accumulator",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// NeighborCount observes the size of the returned top-k neighbor set.
	NeighborCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vmisknn_neighbor_count",
			Help:    "Number of neighbor sessions returned by FindNeighbors",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// IndexBuildDuration tracks offline index construction time.
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vmisknn_index_build_duration_seconds",
			Help:    "Duration of offline index builds in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	// IndexSessionCount is the dense session count of the live index.
	IndexSessionCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vmisknn_index_session_count",
			Help: "Number of sessions in the currently live index",
		},
	)

	// IndexBuildErrors counts failed build attempts by error kind.
	IndexBuildErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vmisknn_index_build_errors_total",
			Help: "Total number of index build failures",
		},
		[]string{"kind"}, // "malformed_input", "empty_corpus", "index_io"
	)

	// SessionStoreHits / SessionStoreMisses track evolving-session cache
	// efficiency.
	SessionStoreHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vmisknn_sessionstore_hits_total",
			Help: "Total number of session store gets that found an existing session",
		},
	)

	SessionStoreMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vmisknn_sessionstore_misses_total",
			Help: "Total number of session store gets that found no existing session",
		},
	)

	// APIRequestsTotal / APIRequestDuration / APIActiveRequests instrument
	// the thin HTTP serving surface.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordPredict records the outcome of one Predict call.
func RecordPredict(duration time.Duration, candidatePoolSize, neighborCount, recommendationCount int) {
	PredictDuration.Observe(duration.Seconds())
	CandidatePoolSize.Observe(float64(candidatePoolSize))
	NeighborCount.Observe(float64(neighborCount))
	if recommendationCount == 0 {
		PredictEmptyTotal.Inc()
	}
}

// RecordIndexBuild records a successful index build.
func RecordIndexBuild(duration time.Duration, sessionCount int) {
	IndexBuildDuration.Observe(duration.Seconds())
	IndexSessionCount.Set(float64(sessionCount))
}

// RecordIndexBuildError records a failed index build, labeled by the
// caller-supplied error kind (e.g. "malformed_input", "empty_corpus",
// "index_io").
func RecordIndexBuildError(kind string) {
	IndexBuildErrors.WithLabelValues(kind).Inc()
}

// RecordSessionStoreGet records whether a session store Get call found an
// existing session.
func RecordSessionStoreGet(found bool) {
	if found {
		SessionStoreHits.Inc()
		return
	}
	SessionStoreMisses.Inc()
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
