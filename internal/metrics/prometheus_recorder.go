package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "wheelindex"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   prom.Histogram
	wheels        prom.Gauge
	skipped       prom.Gauge
	groups        prom.Gauge
	matrixEntries *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		}),
		wheels: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "wheels_indexed",
			Help:      "Wheels listed across all group pages",
		}),
		skipped: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "assets_skipped",
			Help:      "Release assets left out of the index",
		}),
		groups: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "groups_rendered",
			Help:      "Group pages written",
		}),
		matrixEntries: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "matrix_entries",
			Help:      "Build matrix entries emitted per platform",
		}, []string{"platform"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.wheels, pr.skipped, pr.groups, pr.matrixEntries)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetWheelsIndexed(n int) {
	if p == nil {
		return
	}
	p.wheels.Set(float64(n))
}

func (p *PrometheusRecorder) SetAssetsSkipped(n int) {
	if p == nil {
		return
	}
	p.skipped.Set(float64(n))
}

func (p *PrometheusRecorder) SetGroupsRendered(n int) {
	if p == nil {
		return
	}
	p.groups.Set(float64(n))
}

func (p *PrometheusRecorder) SetMatrixEntries(platform string, n int) {
	if p == nil {
		return
	}
	p.matrixEntries.WithLabelValues(platform).Set(float64(n))
}
