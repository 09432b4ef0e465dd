// Package metrics defines the collectors the bot reports into.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer records a value with label values. A nil Observer is valid to
// hold but must not be called; use Observe or Since for nil-safe calls.
type Observer interface {
	Observe(val float64, labels ...string)
	prometheus.Collector
}

// Metrics groups every collector the bot exposes.
type Metrics struct {
	// CommandCount counts dispatched commands, labeled by command and
	// outcome.
	CommandCount Observer
	// UpstreamLatency observes seconds spent on outbound HTTP requests,
	// labeled by upstream.
	UpstreamLatency Observer
}

// New creates the bot's collectors. They are not registered.
func New() Metrics {
	return Metrics{
		CommandCount: NewPromCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "guybot",
				Name:      "commands_total",
				Help:      "Commands dispatched, by command and outcome.",
			},
			[]string{"command", "outcome"},
		)),
		UpstreamLatency: NewPromObserverVec(prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "guybot",
				Name:      "upstream_seconds",
				Help:      "Latency of outbound HTTP requests, by upstream.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"upstream"},
		)),
	}
}

// Collectors returns the collectors for registration.
func (m Metrics) Collectors() []prometheus.Collector {
	var c []prometheus.Collector
	for _, o := range []Observer{m.CommandCount, m.UpstreamLatency} {
		if o != nil {
			c = append(c, o)
		}
	}
	return c
}

// Observe calls o.Observe if o is not nil.
func Observe(o Observer, val float64, labels ...string) {
	if o != nil {
		o.Observe(val, labels...)
	}
}

// Since observes the seconds elapsed since start.
func Since(o Observer, start time.Time, labels ...string) {
	Observe(o, time.Since(start).Seconds(), labels...)
}
