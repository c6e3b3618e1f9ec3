// Package metrics exposes run counters and timings in prometheus format.
// The registry is per-run; nothing is registered globally.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/orchestration"
)

// Recorder collects session metrics. It implements orchestration.Reporter so
// it can be fanned in next to the CLI reporter without extra plumbing.
type Recorder struct {
	registry *prometheus.Registry
	started  prometheus.Counter
	failed   prometheus.Counter
	duration prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridsmoke_sessions_started_total",
			Help: "Number of session tasks whose work has begun.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridsmoke_sessions_failed_total",
			Help: "Number of session tasks that reached a failure outcome.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridsmoke_session_duration_seconds",
			Help:    "Wall-clock duration of resolved session tasks.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
	}
	r.registry.MustRegister(r.started, r.failed, r.duration)
	return r
}

// SessionStarted counts a task whose stagger elapsed.
func (r *Recorder) SessionStarted(int) {
	r.started.Inc()
}

// SessionFinished records a resolved task's duration and failure state.
func (r *Recorder) SessionFinished(result orchestration.SessionResult) {
	r.duration.Observe(result.Duration.Seconds())
	if result.Err != nil {
		r.failed.Inc()
	}
}

// Summary is part of orchestration.Reporter; the counters already hold the
// aggregate.
func (r *Recorder) Summary(orchestration.RunSummary) {}

// Handler returns an HTTP handler serving the recorder's registry in
// prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics listener on addr in the background. Listener
// failures are logged; they never affect the run itself.
func Serve(addr string, r *Recorder, log logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics listener stopped", logging.String("addr", addr), logging.Err(err))
		}
	}()
}
