// Package metrics exposes Prometheus counters for the Sea Service engine.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for lifecycle operations.
const (
	ResultOK      = "ok"
	ResultRefused = "refused"
	ResultFailed  = "failed"
)

type Metrics struct {
	// Transitions counts lifecycle calls by operation and result.
	Transitions *prometheus.CounterVec
	// StorageFailures counts durable writes or reads that failed.
	StorageFailures *prometheus.CounterVec
	// PayloadRecoveries counts corrupt payload blobs replaced by the default.
	PayloadRecoveries prometheus.Counter
	// DraftActive is 1 while a draft exists.
	DraftActive prometheus.Gauge
}

// New registers the engine metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seabook_lifecycle_operations_total",
			Help: "Lifecycle operations on the Sea Service draft by operation and result",
		}, []string{"op", "result"}),
		StorageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seabook_storage_failures_total",
			Help: "Failed reads or writes against the local store",
		}, []string{"op"}),
		PayloadRecoveries: f.NewCounter(prometheus.CounterOpts{
			Name: "seabook_payload_recoveries_total",
			Help: "Stored payloads that failed to parse and were replaced by the default payload",
		}),
		DraftActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "seabook_draft_active",
			Help: "1 while a Sea Service draft exists, 0 otherwise",
		}),
	}
}

// ObserveOperation records the outcome of a lifecycle operation. Errors that
// refuse the call or its input count as refused, anything else as failed.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	switch {
	case err == nil:
	case errors.Is(err, common.ErrIllegalTransition), errors.Is(err, common.ErrEligibilityNotMet),
		errors.Is(err, common.ErrUnknownSection), errors.Is(err, common.ErrInvalidField):
		result = ResultRefused
	default:
		result = ResultFailed
	}
	m.Transitions.WithLabelValues(op, result).Inc()
}

// StorageFailure counts a failed store operation.
func (m *Metrics) StorageFailure(op string) {
	if m == nil {
		return
	}
	m.StorageFailures.WithLabelValues(op).Inc()
}

// PayloadRecovered counts a corrupt payload replaced by the default.
func (m *Metrics) PayloadRecovered() {
	if m == nil {
		return
	}
	m.PayloadRecoveries.Inc()
}

// SetDraftActive mirrors whether a draft exists.
func (m *Metrics) SetDraftActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.DraftActive.Set(1)
	} else {
		m.DraftActive.Set(0)
	}
}

// Serve exposes g on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
