package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, gauges, and histograms for one
// pipeline run. They live on a private registry: the process is a batch job
// with no scrape endpoint, so metrics are either pushed to a Pushgateway at
// the end of the run or discarded. The private registry also lets tests
// create Metrics freely without "already registered" panics.
type Metrics struct {
	RowsRead           *prometheus.CounterVec // label: table={households,trips,persons}
	TripsAggregated    prometheus.Counter
	HouseholdsExcluded *prometheus.CounterVec // label: reason={density,income}
	SummaryCells       prometheus.Gauge
	StageDuration      *prometheus.HistogramVec // label: stage={fetch,summarize,render,export}
	RunSuccess         prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates all pipeline metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey_viz",
			Name:      "rows_read_total",
			Help:      "Rows decoded from the survey archive by table.",
		}, []string{"table"}),
		TripsAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "survey_viz",
			Name:      "trips_aggregated_total",
			Help:      "Trip rows folded into household-mode distances.",
		}),
		HouseholdsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey_viz",
			Name:      "households_excluded_total",
			Help:      "Households dropped by classification filters, by reason.",
		}, []string{"reason"}),
		SummaryCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "survey_viz",
			Name:      "summary_cells",
			Help:      "Retained cells in the final summary table.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "survey_viz",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"stage"}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "survey_viz",
			Name:      "run_success",
			Help:      "1 when the run completed, 0 when it failed.",
		}),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.TripsAggregated,
		m.HouseholdsExcluded,
		m.SummaryCells,
		m.StageDuration,
		m.RunSuccess,
	)

	return m
}

// Push records the run outcome and sends the registry to a Pushgateway.
// Called once at the end of a run; failures are the caller's to log, never
// to abort on.
func (m *Metrics) Push(url string, success bool) error {
	if success {
		m.RunSuccess.Set(1)
	} else {
		m.RunSuccess.Set(0)
	}
	return push.New(url, "survey_viz").Gatherer(m.registry).Push()
}
