package checker

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/metrics"
	"github.com/specialistvlad/topicprobe/internal/registry"
	"github.com/specialistvlad/topicprobe/internal/scheduler"
	"github.com/specialistvlad/topicprobe/internal/topicstore"
)

// TypeRegistry resolves a type descriptor to a registered message type.
type TypeRegistry interface {
	Lookup(descriptor string) (*registry.RegisteredType, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock sets the clock used for round deadlines and durations.
func WithClock(clk clock.Clock) Option {
	return func(c *Checker) { c.clock = clk }
}

// WithScheduler replaces the round scheduler. It takes precedence over the
// configured round timeout.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(c *Checker) { c.sched = s }
}

// WithMetrics records the run into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(c *Checker) { c.sessionID = id }
}

// Checker owns the state of one check run.
type Checker struct {
	graph     graph.Graph
	types     TypeRegistry
	settings  config.CheckerSettings
	clock     clock.Clock
	sched     *scheduler.Scheduler
	metrics   *metrics.Metrics
	sessionID string

	store     *topicstore.Store
	ignore    stringSet
	checked   stringSet
	reported  stringSet
	stale     stringSet
	noted     stringSet
	frontier  stringSet
	important []string
	round     int

	unresolved map[string]string
	stuck      []StuckFinding
	deadEnds   []DeadEnd
	deadEndSet stringSet
	pending    []string

	subsMu sync.Mutex
	subs   []graph.Subscription
}

// New creates a checker over g. types resolves the descriptors reported by
// the graph; settings seeds the first round.
func New(g graph.Graph, types TypeRegistry, settings config.CheckerSettings, opts ...Option) *Checker {
	c := &Checker{
		graph:      g,
		types:      types,
		settings:   settings,
		store:      topicstore.New(),
		ignore:     newStringSet(settings.IgnoreTopics...),
		checked:    newStringSet(),
		reported:   newStringSet(),
		stale:      newStringSet(),
		noted:      newStringSet(),
		frontier:   newStringSet(),
		important:  append([]string(nil), settings.ImportantTopics...),
		unresolved: make(map[string]string),
		deadEndSet: newStringSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.sched == nil {
		timeout := settings.RoundTimeout
		if timeout <= 0 {
			timeout = config.DefaultRoundTimeout
		}
		c.sched = scheduler.New(c.clock, timeout)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return c
}

// SessionID identifies the run in logs and reports.
func (c *Checker) SessionID() string {
	return c.sessionID
}

// Run executes rounds until nothing new is discovered, the round limit is
// reached or ctx is cancelled. The report reflects everything observed so
// far, even when an error is returned.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.With(ctx, "session_id", c.sessionID)
	logger := ctxlog.FromContext(ctx)
	startedAt := c.clock.Now()

	logger.Info("Topic connection checker started.",
		"important_topics", len(c.important),
		"ignore_topics", len(c.ignore),
		"round_timeout", c.sched.Timeout(),
	)
	defer c.closeSubscriptions(ctx)
	defer c.sched.Stop()

	for len(c.important) > 0 {
		if c.settings.MaxRounds > 0 && c.round >= c.settings.MaxRounds {
			c.pending = append([]string(nil), c.important...)
			logger.Warn("Round limit reached, topics left unchecked.", "max_rounds", c.settings.MaxRounds, "topics", c.pending)
			break
		}

		roundStart := c.clock.Now()
		if err := c.runCheckRound(ctx); err != nil {
			return c.buildReport(startedAt), fmt.Errorf("round %d: %w", c.round, err)
		}
		next := c.analyzeResults(ctx)
		c.metrics.ObserveRound(c.clock.Since(roundStart))

		if len(next) == 0 {
			break
		}
		logger.Info("Topics to check in the next round.", "round", c.round, "topics", next)
		c.important = next
	}

	report := c.buildReport(startedAt)
	logger.Info("Topic connection check finished.",
		"rounds", report.Rounds,
		"stuck", len(report.Stuck),
		"dead_ends", len(report.DeadEnds),
		"unresolved", len(report.Unresolved),
	)
	return report, nil
}

func (c *Checker) closeSubscriptions(ctx context.Context) {
	c.subsMu.Lock()
	subs := c.subs
	c.subs = nil
	c.subsMu.Unlock()

	logger := ctxlog.FromContext(ctx)
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			logger.Warn("Failed to close subscription.", "topic", sub.Topic(), "error", err)
		}
	}
}
