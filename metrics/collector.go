// Package metrics exports tickfsm transition attempts as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/enetx/tickfsm"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts transition attempts. It is both a tickfsm.Observer, to be
// passed to tickfsm.WithObserver, and a prometheus.Collector, to be registered
// with a registry.
type Collector struct {
	attempts    *prometheus.CounterVec
	transitions *prometheus.CounterVec
	state       *prometheus.GaugeVec
	active      string
	hasActive   bool
}

var (
	_ tickfsm.EntryObserver = (*Collector)(nil)
	_ prometheus.Collector  = (*Collector)(nil)
)

// NewCollector returns a Collector whose metrics carry the given namespace
// and the constant label machine.
func NewCollector(namespace, machine string) *Collector {
	constLabels := prometheus.Labels{"machine": machine}

	return &Collector{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "attempts_total",
				Help:        "Transition attempts by kind and outcome.",
				ConstLabels: constLabels,
			},
			[]string{"kind", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "transitions_total",
				Help:        "Committed transitions by source and target state.",
				ConstLabels: constLabels,
			},
			[]string{"from", "to"},
		),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "state_active",
				Help:        "1 for the current state of the machine.",
				ConstLabels: constLabels,
			},
			[]string{"state"},
		),
	}
}

// Observe records one attempt.
func (c *Collector) Observe(a tickfsm.Attempt) {
	c.attempts.WithLabelValues(a.Kind.String(), a.Outcome.String()).Inc()

	if a.Outcome == tickfsm.Committed {
		c.transitions.WithLabelValues(a.From.String(), a.To.String()).Inc()
	}
}

// Entered moves the state_active marker to the entered state.
func (c *Collector) Entered(_, to *tickfsm.State, _ time.Duration) {
	name := to.String()

	if c.hasActive && c.active != name {
		c.state.WithLabelValues(c.active).Set(0)
	}

	c.state.WithLabelValues(name).Set(1)
	c.active, c.hasActive = name, true
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.attempts.Describe(ch)
	c.transitions.Describe(ch)
	c.state.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.attempts.Collect(ch)
	c.transitions.Collect(ch)
	c.state.Collect(ch)
}
