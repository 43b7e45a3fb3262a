package monitoring

import (
	"net/http"
	"sync"

	"github.com/mezonai/coins/logx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type enginePromMetrics struct {
	committedTxCount prometheus.Counter
	rejectedTxCount  *prometheus.CounterVec
	feeCollected     prometheus.Counter
	feePaid          prometheus.Histogram
	txLines          prometheus.Histogram
	blockCount       prometheus.Counter
	handlerPanics    prometheus.Counter
}

func newEnginePromMetrics(reg prometheus.Registerer) *enginePromMetrics {
	factory := promauto.With(reg)
	return &enginePromMetrics{
		committedTxCount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coins_committed_tx_count",
				Help: "The total number of transactions that passed validation and dispatch",
			},
		),
		rejectedTxCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coins_rejected_tx_count",
				Help: "The total number of rejected transactions",
			},
			[]string{"reason"},
		),
		feeCollected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coins_fee_collected_total",
				Help: "Sum of all amounts deposited into the fee pool",
			},
		),
		feePaid: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coins_fee_paid",
				Help:    "Fee collected per committed transaction",
				Buckets: prometheus.ExponentialBuckets(1, 10, 10),
			},
		),
		txLines: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coins_tx_lines",
				Help:    "Number of inputs plus outputs per committed transaction",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
		),
		blockCount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coins_block_count",
				Help: "The total number of processed blocks",
			},
		),
		handlerPanics: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coins_handler_panic_count",
				Help: "The total number of panics recovered from handler hooks",
			},
		),
	}
}

var (
	metricsMu     sync.RWMutex
	engineMetrics *enginePromMetrics
	initOnce      sync.Once
)

// InitMetrics registers the engine metrics with the default registry. Safe to call more than
// once; until it is called every Record function is a no-op.
func InitMetrics() {
	initOnce.Do(func() {
		InitMetricsWith(prometheus.DefaultRegisterer)
	})
}

// InitMetricsWith registers the engine metrics with reg, replacing any previous set.
func InitMetricsWith(reg prometheus.Registerer) {
	m := newEnginePromMetrics(reg)
	metricsMu.Lock()
	engineMetrics = m
	metricsMu.Unlock()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func current() *enginePromMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return engineMetrics
}

func RecordCommittedTx(lines int) {
	if m := current(); m != nil {
		m.committedTxCount.Inc()
		m.txLines.Observe(float64(lines))
	}
}

func RecordRejectedTx(reason string) {
	if m := current(); m != nil {
		m.rejectedTxCount.With(prometheus.Labels{
			"reason": reason,
		}).Inc()
	}
}

func RecordFee(amount uint64) {
	if m := current(); m != nil {
		m.feeCollected.Add(float64(amount))
		m.feePaid.Observe(float64(amount))
	}
}

func IncreaseBlockCount() {
	if m := current(); m != nil {
		m.blockCount.Inc()
	}
}

func IncreasePanicCount() {
	if m := current(); m != nil {
		m.handlerPanics.Inc()
	}
}
