package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives run outcomes. Runs record through it so the HTTP server
// and the menu share one set of collectors.
type Recorder interface {
	RecordRun(outcome string, duration time.Duration)
	RecordSelection(samples, selected int)
}

// Prometheus holds the scan-list collectors
type Prometheus struct {
	runsTotal           *prometheus.CounterVec
	runDuration         prometheus.Histogram
	samplesCollected    prometheus.Gauge
	selectedFrequencies prometheus.Gauge
}

// NewPrometheus registers the collectors with reg. A nil reg uses the default
// registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Prometheus{
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scanlist_runs_total",
			Help: "Frequency selection runs by outcome",
		}, []string{"outcome"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanlist_run_duration_seconds",
			Help:    "Wall time of a frequency selection run, including the spectral scan",
			Buckets: []float64{5, 10, 20, 30, 45, 60, 120, 300},
		}),
		samplesCollected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scanlist_samples_collected",
			Help: "Spectral-scan buckets collected by the last run",
		}),
		selectedFrequencies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scanlist_selected_frequencies",
			Help: "Frequencies in the last applied scan-list",
		}),
	}
}

// RecordRun counts a finished run.
func (p *Prometheus) RecordRun(outcome string, duration time.Duration) {
	p.runsTotal.WithLabelValues(outcome).Inc()
	p.runDuration.Observe(duration.Seconds())
}

// RecordSelection sets the sizes of the last run's input and output.
func (p *Prometheus) RecordSelection(samples, selected int) {
	p.samplesCollected.Set(float64(samples))
	p.selectedFrequencies.Set(float64(selected))
}
