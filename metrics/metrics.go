// Package metrics counts what happens between the bar and its blocks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "taibar"

type Metrics struct {
	Registry *prometheus.Registry

	// Requests counts requests from blocks, by block kind and request.
	Requests *prometheus.CounterVec
	// Errors counts errors shown by blocks.
	Errors *prometheus.CounterVec
	// Faults counts blocks that ended with an error or a panic.
	Faults *prometheus.CounterVec
	// DroppedEvents counts events a block did not take in time.
	DroppedEvents *prometheus.CounterVec
	Running       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests sent by blocks.",
		}, []string{"block", "request"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_errors_total",
			Help:      "Errors reported by blocks.",
		}, []string{"block"}),
		Faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_faults_total",
			Help:      "Blocks that stopped with an error or a panic.",
		}, []string{"block"}),
		DroppedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_events_total",
			Help:      "Events not delivered because the block did not receive them in time.",
		}, []string{"block"}),
		Running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running_blocks",
			Help:      "Blocks currently running.",
		}),
	}
	m.Registry.MustRegister(
		m.Requests,
		m.Errors,
		m.Faults,
		m.DroppedEvents,
		m.Running,
	)
	return m
}
