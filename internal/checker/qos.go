package checker

import (
	"context"

	"github.com/specialistvlad/topicprobe/internal/qos"
)

// resolveQoS mirrors the first publisher's profile so that a QoS mismatch
// never hides real traffic. Without publishers the permissive default is
// used.
func (c *Checker) resolveQoS(ctx context.Context, topic string) (qos.Profile, error) {
	pubs, err := c.graph.PublishersOf(ctx, topic)
	if err != nil {
		return qos.Profile{}, err
	}
	if len(pubs) == 0 {
		return qos.Default(), nil
	}
	return qos.FromPublisher(pubs[0].QoS), nil
}
