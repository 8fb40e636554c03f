// Package metrics exposes engine statistics as a prometheus collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"caster/engine"
)

const subsystem = "caster"

// Collector adapts Engine.Stats to the prometheus scrape model. It owns no
// state beyond the engine handle; register it with any prometheus registry.
type Collector struct {
	eng *engine.Engine

	entries *prometheus.Desc
	lookups *prometheus.Desc
	faults  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(eng *engine.Engine, namespace string) *Collector {
	return &Collector{
		eng: eng,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "cache_entries"),
			"Resolved conversion entries held by the cache.",
			nil, nil,
		),
		lookups: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "lookups_total"),
			"Cache lookups partitioned by result.",
			[]string{"result"}, nil,
		),
		faults: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "faults_total"),
			"Conversion attempts that faulted in converter code.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.lookups
	ch <- c.faults
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.eng.Stats()

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(st.Entries))
	ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(st.Hits), "hit")
	ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(st.Misses), "miss")
	ch <- prometheus.MustNewConstMetric(c.faults, prometheus.CounterValue, float64(st.Faults))
}
