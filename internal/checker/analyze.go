package checker

import (
	"context"

	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/metrics"
	"github.com/specialistvlad/topicprobe/internal/topicstore"
)

// analyzeResults classifies every observation, traces the topics that became
// stuck and returns the next round's topics in sorted order.
func (c *Checker) analyzeResults(ctx context.Context) []string {
	ctx = ctxlog.With(ctx, "round", c.round)
	logger := ctxlog.FromContext(ctx)

	var stuck []string
	for _, o := range c.store.Snapshot() {
		switch {
		case !o.Received:
			if c.isStuckCandidate(o) {
				publisher := o.Publishers[0]
				logger.Warn("Topic is stuck.", "topic", o.Topic, "publisher", publisher.String())
				c.reported.add(o.Topic)
				c.stuck = append(c.stuck, StuckFinding{Topic: o.Topic, Publisher: publisher, Round: c.round})
				c.metrics.Finding(metrics.FindingStuck)
				stuck = append(stuck, o.Topic)
				continue
			}
			c.noteSilent(ctx, o)
		case o.HasLastReceived():
			c.checkStaleness(ctx, o)
		default:
			logger.Warn("Topic has unexpected state.", "topic", o.Topic, "received", o.Received)
		}
	}

	for _, topic := range stuck {
		c.traceUpstream(ctx, topic)
	}

	next := c.frontier.sorted()
	c.frontier.clear()
	c.metrics.SetFrontier(len(next))
	return next
}

func (c *Checker) isStuckCandidate(o topicstore.Observation) bool {
	return !c.ignore.has(o.Topic) && len(o.Publishers) == 1 && !c.reported.has(o.Topic)
}

// noteSilent logs silent topics that are not stuck. Each is noted once.
func (c *Checker) noteSilent(ctx context.Context, o topicstore.Observation) {
	if c.ignore.has(o.Topic) || c.reported.has(o.Topic) || c.noted.has(o.Topic) {
		return
	}
	c.noted.add(o.Topic)

	logger := ctxlog.FromContext(ctx)
	if len(o.Publishers) == 0 {
		logger.Warn("Topic has unexpected state.", "topic", o.Topic, "reason", "no publisher")
		c.metrics.Finding(metrics.FindingNoPublisher)
		return
	}
	logger.Debug("Topic is silent with several publishers, skipping as ambiguous.", "topic", o.Topic, "publishers", len(o.Publishers))
}

// checkStaleness warns once for a topic whose last message is older than the
// configured threshold. A zero threshold disables the check.
func (c *Checker) checkStaleness(ctx context.Context, o topicstore.Observation) {
	threshold := c.settings.StalenessThreshold
	if threshold <= 0 || c.stale.has(o.Topic) {
		return
	}
	age := c.graph.Now().Sub(o.LastReceivedAt)
	if age <= threshold {
		return
	}
	c.stale.add(o.Topic)
	c.metrics.Finding(metrics.FindingStale)
	ctxlog.FromContext(ctx).Warn("Topic is stale.", "topic", o.Topic, "age", age, "threshold", threshold)
}
