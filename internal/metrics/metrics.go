// Package metrics holds the Prometheus collectors of a check run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "topicprobe"

// Finding kinds.
const (
	FindingStuck       = "stuck"
	FindingStale       = "stale"
	FindingDeadEnd     = "dead_end"
	FindingUnresolved  = "unresolved"
	FindingNoPublisher = "no_publisher"
)

// Metrics holds all Prometheus metrics for the checker. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Rounds           prometheus.Counter
	RoundDuration    prometheus.Histogram
	TopicsChecked    prometheus.Counter
	MessagesReceived *prometheus.CounterVec
	Findings         *prometheus.CounterVec
	Frontier         prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rounds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Total number of observation rounds completed.",
		}),
		RoundDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Wall time from arming a round to the end of its analysis.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		TopicsChecked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_checked_total",
			Help:      "Total number of topics subscribed to for checking.",
		}),
		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of messages observed per topic.",
		}, []string{"topic"}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Total number of diagnostic findings by kind.",
		}, []string{"kind"}), // kind: stuck, stale, dead_end, unresolved, no_publisher
		Frontier: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_topics",
			Help:      "Number of topics queued for the next round.",
		}),
	}
}

// ObserveRound records a completed round.
func (m *Metrics) ObserveRound(d time.Duration) {
	if m == nil {
		return
	}
	m.Rounds.Inc()
	m.RoundDuration.Observe(d.Seconds())
}

// TopicChecked records a new subscription.
func (m *Metrics) TopicChecked() {
	if m == nil {
		return
	}
	m.TopicsChecked.Inc()
}

// MessageReceived records one delivered message.
func (m *Metrics) MessageReceived(topic string) {
	if m == nil {
		return
	}
	m.MessagesReceived.WithLabelValues(topic).Inc()
}

// Finding records one diagnostic finding.
func (m *Metrics) Finding(kind string) {
	if m == nil {
		return
	}
	m.Findings.WithLabelValues(kind).Inc()
}

// SetFrontier records the size of the next round's topic set.
func (m *Metrics) SetFrontier(n int) {
	if m == nil {
		return
	}
	m.Frontier.Set(float64(n))
}
