package cloudsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	resultOK      = "ok"
	resultError   = "error"
	resultMissing = "missing"
)

// Metrics are the Prometheus metrics of the sync engine.
type Metrics struct {
	// counters
	CounterPulls  *prometheus.CounterVec
	CounterPushes *prometheus.CounterVec

	// gauges
	GaugePending *prometheus.GaugeVec

	// histograms
	HistPushDuration prometheus.Histogram
}

func NewTestMetricsAndRegistry() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetrics("mesocycle", "test_sync", reg), reg
}

func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	counterPulls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pulls_total",
		Help:      "The total number of remote pulls by table and result",
	}, []string{"table", "result"})
	counterPushes := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pushes_total",
		Help:      "The total number of remote pushes by table and result",
	}, []string{"table", "result"})

	gaugePending := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "pending",
		Help:        "Whether a store has a debounced push waiting",
		ConstLabels: nil,
	}, []string{"store"})

	histPushDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "push_duration_seconds",
			Help:      "Duration of a single table push in seconds",
		},
	)

	return &Metrics{
		CounterPulls:     counterPulls,
		CounterPushes:    counterPushes,
		GaugePending:     gaugePending,
		HistPushDuration: histPushDuration,
	}
}
