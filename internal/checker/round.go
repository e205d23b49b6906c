package checker

import (
	"context"

	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/metrics"
)

// runCheckRound subscribes to the round's unchecked topics and blocks until
// the round deadline has fired.
func (c *Checker) runCheckRound(ctx context.Context) error {
	c.round++
	ctx = ctxlog.With(ctx, "round", c.round)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting check round.", "topics", c.important)

	for _, topic := range c.important {
		if c.checked.has(topic) {
			continue
		}
		c.checkTopic(ctx, topic)
	}

	topics := append([]string(nil), c.important...)
	round := c.sched.Arm(func() { c.finishRound(ctx, topics) })
	return round.Wait(ctx)
}

// checkTopic subscribes to topic. Every failure is logged and leaves the
// topic out of CheckedSet, so it can be retried if it is queued again.
func (c *Checker) checkTopic(ctx context.Context, topic string) {
	logger := ctxlog.FromContext(ctx).With("topic", topic)

	typ, ok, err := c.graph.ResolveType(ctx, topic)
	if err != nil {
		logger.Warn("Could not determine message type.", "error", err)
		c.markUnresolved(topic, err.Error())
		return
	}
	if !ok {
		logger.Warn("Could not determine message type.")
		c.markUnresolved(topic, "message type not advertised")
		return
	}

	if _, err := c.types.Lookup(typ); err != nil {
		logger.Error("Failed to load message type.", "type", typ, "error", err)
		c.markUnresolved(topic, err.Error())
		return
	}

	profile, err := c.resolveQoS(ctx, topic)
	if err != nil {
		logger.Warn("Could not query publishers for QoS.", "error", err)
		c.markUnresolved(topic, err.Error())
		return
	}

	c.store.Create(topic, typ)
	sub, err := c.graph.Subscribe(ctx, topic, typ, profile, c.onMessage)
	if err != nil {
		c.store.Discard(topic)
		logger.Error("Failed to subscribe.", "type", typ, "error", err)
		c.markUnresolved(topic, err.Error())
		return
	}

	c.subsMu.Lock()
	c.subs = append(c.subs, sub)
	c.subsMu.Unlock()

	c.checked.add(topic)
	delete(c.unresolved, topic)
	c.metrics.TopicChecked()
	logger.Debug("Subscribed.", "type", typ, "qos", profile.String())
}

func (c *Checker) markUnresolved(topic, reason string) {
	if _, seen := c.unresolved[topic]; !seen {
		c.metrics.Finding(metrics.FindingUnresolved)
	}
	c.unresolved[topic] = reason
}

// onMessage runs on the graph's delivery goroutines.
func (c *Checker) onMessage(msg graph.Message) {
	if c.store.MarkReceived(msg.Topic, c.graph.Now()) {
		c.metrics.MessageReceived(msg.Topic)
	}
}

// finishRound runs on the deadline goroutine. It records the current
// publishers of every observed topic of the round.
func (c *Checker) finishRound(ctx context.Context, topics []string) {
	logger := ctxlog.FromContext(ctx)
	for _, topic := range topics {
		if !c.store.Has(topic) {
			continue
		}
		pubs, err := c.graph.PublishersOf(ctx, topic)
		if err != nil {
			logger.Warn("Could not resolve publishers at round end.", "topic", topic, "error", err)
			continue
		}
		c.store.SetPublishers(topic, graph.PublisherNodes(pubs))
	}
	logger.Debug("Round deadline reached.", "topics", len(topics))
}
