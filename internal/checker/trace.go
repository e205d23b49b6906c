package checker

import (
	"context"

	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/metrics"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
)

// maxTracedPublishers bounds fan-in. Widely published topics are usually
// loggers or debug sinks rather than root causes.
const maxTracedPublishers = 2

// traceUpstream walks one hop upstream from a stuck topic: every topic its
// publishers subscribe to is either a dead end, already observed, or queued
// for the next round.
func (c *Checker) traceUpstream(ctx context.Context, stuckTopic string) {
	logger := ctxlog.FromContext(ctx).With("stuck_topic", stuckTopic)

	o, ok := c.store.Get(stuckTopic)
	if !ok {
		return
	}
	for _, node := range o.Publishers {
		subs, err := c.graph.SubscriptionsOf(ctx, node)
		if err != nil {
			logger.Error("Failed to query node subscriptions.", "node", node.String(), "error", err)
			continue
		}

		for _, s := range subs {
			if c.ignore.has(s.Topic) {
				continue
			}
			pubs, err := c.graph.PublishersOf(ctx, s.Topic)
			if err != nil {
				logger.Error("Failed to query publishers.", "node", node.String(), "topic", s.Topic, "error", err)
				continue
			}

			switch {
			case len(pubs) == 0:
				logger.Error("Node subscribes to a topic with no publisher.", "node", node.String(), "topic", s.Topic)
				c.recordDeadEnd(node, s.Topic, stuckTopic)
				continue
			case len(pubs) > maxTracedPublishers:
				continue
			}

			if observed, tracked := c.store.Get(s.Topic); tracked {
				status := "active"
				if !observed.Received {
					status = "stuck"
				}
				logger.Debug("Subscribed topic status.", "node", node.String(), "topic", s.Topic, "status", status)
			} else if !c.checked.has(s.Topic) {
				logger.Debug("Subscribed topic was not checked.", "node", node.String(), "topic", s.Topic)
				c.frontier.add(s.Topic)
			}
		}
	}
}

func (c *Checker) recordDeadEnd(node nodeid.Address, topic, stuckTopic string) {
	key := node.String() + " " + topic
	if c.deadEndSet.has(key) {
		return
	}
	c.deadEndSet.add(key)
	c.deadEnds = append(c.deadEnds, DeadEnd{Subscriber: node, Topic: topic, StuckTopic: stuckTopic, Round: c.round})
	c.metrics.Finding(metrics.FindingDeadEnd)
}
