package checker

import (
	"sort"
	"time"

	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/topicstore"
)

// Status is the final classification of a topic.
type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusStale       Status = "stale"
	StatusStuck       Status = "stuck"
	StatusNoPublisher Status = "no_publisher"
	StatusAmbiguous   Status = "ambiguous"
	StatusIgnored     Status = "ignored"
	StatusUnresolved  Status = "unresolved"
	StatusUnexpected  Status = "unexpected"
)

// Report summarises a check run.
type Report struct {
	SessionID  string            `json:"session_id" yaml:"session_id"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
	Rounds     int               `json:"rounds" yaml:"rounds"`
	Topics     []TopicReport     `json:"topics" yaml:"topics"`
	Stuck      []StuckFinding    `json:"stuck,omitempty" yaml:"stuck,omitempty"`
	DeadEnds   []DeadEnd         `json:"dead_ends,omitempty" yaml:"dead_ends,omitempty"`
	Unresolved []UnresolvedTopic `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	// Pending lists topics queued when the round limit stopped the run.
	Pending []string `json:"pending,omitempty" yaml:"pending,omitempty"`
}

// TopicReport is the final state of one observed topic.
type TopicReport struct {
	Topic          string           `json:"topic" yaml:"topic"`
	Type           string           `json:"type" yaml:"type"`
	Status         Status           `json:"status" yaml:"status"`
	Publishers     []nodeid.Address `json:"publishers,omitempty" yaml:"publishers,omitempty"`
	MessageCount   uint64           `json:"message_count" yaml:"message_count"`
	LastReceivedAt *time.Time       `json:"last_received_at,omitempty" yaml:"last_received_at,omitempty"`
}

// StuckFinding is a topic reported stuck together with its sole publisher.
type StuckFinding struct {
	Topic     string         `json:"topic" yaml:"topic"`
	Publisher nodeid.Address `json:"publisher" yaml:"publisher"`
	Round     int            `json:"round" yaml:"round"`
}

// DeadEnd is a subscription edge whose topic has no publisher.
type DeadEnd struct {
	Subscriber nodeid.Address `json:"subscriber" yaml:"subscriber"`
	Topic      string         `json:"topic" yaml:"topic"`
	StuckTopic string         `json:"stuck_topic" yaml:"stuck_topic"`
	Round      int            `json:"round" yaml:"round"`
}

// UnresolvedTopic is a topic that could never be subscribed to.
type UnresolvedTopic struct {
	Topic  string `json:"topic" yaml:"topic"`
	Reason string `json:"reason" yaml:"reason"`
}

// HasFindings reports whether the run found a root cause or a stuck topic.
func (r *Report) HasFindings() bool {
	return len(r.Stuck) > 0 || len(r.DeadEnds) > 0
}

// StatusOf returns the status of topic, or false if it is not in the report.
func (r *Report) StatusOf(topic string) (Status, bool) {
	for _, t := range r.Topics {
		if t.Topic == topic {
			return t.Status, true
		}
	}
	for _, u := range r.Unresolved {
		if u.Topic == topic {
			return StatusUnresolved, true
		}
	}
	return "", false
}

func (c *Checker) buildReport(startedAt time.Time) *Report {
	r := &Report{
		SessionID:  c.sessionID,
		StartedAt:  startedAt,
		FinishedAt: c.clock.Now(),
		Rounds:     c.round,
		Stuck:      append([]StuckFinding(nil), c.stuck...),
		DeadEnds:   append([]DeadEnd(nil), c.deadEnds...),
		Pending:    append([]string(nil), c.pending...),
	}

	now := c.graph.Now()
	for _, o := range c.store.Snapshot() {
		tr := TopicReport{
			Topic:        o.Topic,
			Type:         o.Type,
			Status:       c.statusOf(o, now),
			Publishers:   o.Publishers,
			MessageCount: o.MessageCount,
		}
		if o.HasLastReceived() {
			at := o.LastReceivedAt
			tr.LastReceivedAt = &at
		}
		r.Topics = append(r.Topics, tr)
	}

	topics := make([]string, 0, len(c.unresolved))
	for topic := range c.unresolved {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		r.Unresolved = append(r.Unresolved, UnresolvedTopic{Topic: topic, Reason: c.unresolved[topic]})
	}
	return r
}

func (c *Checker) statusOf(o topicstore.Observation, now time.Time) Status {
	switch {
	case o.Received && o.HasLastReceived():
		if t := c.settings.StalenessThreshold; t > 0 && now.Sub(o.LastReceivedAt) > t {
			return StatusStale
		}
		return StatusHealthy
	case o.Received:
		return StatusUnexpected
	case c.ignore.has(o.Topic):
		return StatusIgnored
	case c.reported.has(o.Topic):
		return StatusStuck
	case len(o.Publishers) == 0:
		return StatusNoPublisher
	case len(o.Publishers) > 1:
		return StatusAmbiguous
	default:
		return StatusUnexpected
	}
}
