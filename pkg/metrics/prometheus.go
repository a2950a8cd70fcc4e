// Package metrics exposes a battery run's MetricResults as Prometheus
// gauges, adapted from the teacher's pkg/monitoring/collector
// (mutex-guarded sample collection) and pkg/monitoring/prometheus
// (same client_golang dependency, used here for exposition rather than
// querying a remote server: a battery run has no external Prometheus
// to read from, but the ambient stack still wants structured metrics
// export).
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhkimqd/sts-battery/pkg/battery"
)

// Collector holds the gauge vectors for one battery run's metrics and
// serializes updates the way the teacher's collector.Collector
// serializes sample appends (a single mutex guarding registration,
// since Set on an already-registered gauge is itself safe for
// concurrent use).
type Collector struct {
	mu          sync.Mutex
	registry    *prometheus.Registry
	uniformityP *prometheus.GaugeVec
	passRate    *prometheus.GaugeVec
	sample      *prometheus.GaugeVec
}

// NewCollector builds a fresh registry with the battery's gauge
// vectors, labeled by test name and partition index.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		uniformityP: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sts_battery",
			Name:      "uniformity_p",
			Help:      "chi-squared uniformity p-value for a (test, partition)",
		}, []string{"test", "partition"}),
		passRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sts_battery",
			Name:      "pass_rate",
			Help:      "fraction of valid p-values at or above alpha for a (test, partition)",
		}, []string{"test", "partition"}),
		sample: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sts_battery",
			Name:      "sample_count",
			Help:      "number of valid p-values aggregated for a (test, partition)",
		}, []string{"test", "partition"}),
	}
	registry.MustRegister(c.uniformityP, c.passRate, c.sample)
	return c
}

// Observe records one MetricResult's values into the gauges.
func (c *Collector) Observe(m battery.MetricResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	partition := strconv.Itoa(m.Partition)
	c.uniformityP.WithLabelValues(m.TestName, partition).Set(m.UniformityP)
	if m.Sample > 0 {
		c.passRate.WithLabelValues(m.TestName, partition).Set(float64(m.PassCount) / float64(m.Sample))
	}
	c.sample.WithLabelValues(m.TestName, partition).Set(float64(m.Sample))
}

// ObserveAll records every result in a RunReport.
func (c *Collector) ObserveAll(report battery.RunReport) {
	for _, m := range report.Results {
		c.Observe(m)
	}
}

// Handler returns the HTTP handler serving this collector's registry
// in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
