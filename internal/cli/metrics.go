package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/asmdeps/pkg/observability"
)

// metrics records analysis events into a private Prometheus registry that
// is written once, in node-exporter textfile format, at the end of a run.
type metrics struct {
	observability.NoopAnalysisHooks
	observability.NoopRenderHooks

	registry *prometheus.Registry

	assembliesTotal   *prometheus.CounterVec
	typesTotal        prometheus.Counter
	edgesTotal        prometheus.Counter
	assemblySeconds   prometheus.Histogram
	analysisSeconds   prometheus.Gauge
	analysisSucceeded prometheus.Gauge
	renderSeconds     *prometheus.GaugeVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		// Labels: status (analyzed, missing, mismatch, unreadable)
		assembliesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "assemblies_total",
			Help:      "Assemblies handled by the worklist, by outcome",
		}, []string{"status"}),
		typesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "types_total",
			Help:      "Types of the primary assembly with a TypeReferences entry",
		}),
		edgesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "type_dependencies_total",
			Help:      "Type dependency edges reported for the primary assembly",
		}),
		assemblySeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: appName,
			Name:      "assembly_duration_seconds",
			Help:      "Time spent analyzing one assembly",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		analysisSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of the last analysis run",
		}),
		analysisSucceeded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      "analysis_success",
			Help:      "1 if the last analysis run completed without error",
		}),
		// Labels: format (dot, svg, json)
		renderSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      "graph_render_duration_seconds",
			Help:      "Time spent writing the assembly graph",
		}, []string{"format"}),
	}
}

func (m *metrics) OnAssemblyComplete(_ context.Context, _ string, types, edges int, d time.Duration) {
	m.assembliesTotal.WithLabelValues("analyzed").Inc()
	m.typesTotal.Add(float64(types))
	m.edgesTotal.Add(float64(edges))
	m.assemblySeconds.Observe(d.Seconds())
}

func (m *metrics) OnAssemblySkipped(_ context.Context, _, reason string) {
	m.assembliesTotal.WithLabelValues(reason).Inc()
}

func (m *metrics) OnAnalysisComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	m.analysisSeconds.Set(d.Seconds())
	if err == nil {
		m.analysisSucceeded.Set(1)
	} else {
		m.analysisSucceeded.Set(0)
	}
}

func (m *metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err == nil {
		m.renderSeconds.WithLabelValues(format).Set(d.Seconds())
	}
}

// write stores the registry at path in textfile collector format.
func (m *metrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
