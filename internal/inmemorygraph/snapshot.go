package inmemorygraph

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
)

const defaultPublisherDepth = 10

// FromSnapshot builds a graph from the snapshot described in configuration.
func FromSnapshot(snap *config.Snapshot, clk clock.Clock) (*Graph, error) {
	g := New(clk)
	if snap == nil {
		return g, nil
	}

	profiles := make(map[string]qos.Profile, len(snap.Topics))
	for _, t := range snap.Topics {
		profile, err := publisherProfile(t)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", t.Name, err)
		}
		profiles[t.Name] = profile
		g.AddTopic(t.Name, t.Type)
		if err := g.SetActive(t.Name, t.Active); err != nil {
			return nil, err
		}
	}

	for _, n := range snap.Nodes {
		ref := nodeid.New(n.Name, n.Namespace)
		g.AddNode(ref)
		for _, topic := range n.Publishes {
			if err := g.AddPublisher(topic, ref, profiles[topic]); err != nil {
				return nil, fmt.Errorf("node %q: %w", ref, err)
			}
		}
		for _, topic := range n.Subscribes {
			if err := g.AddSubscription(ref, topic); err != nil {
				return nil, fmt.Errorf("node %q: %w", ref, err)
			}
		}
	}
	return g, nil
}

// publisherProfile starts from a reliable, volatile, keep-last(10) writer and
// applies the overrides declared on the topic.
func publisherProfile(t *config.SnapshotTopic) (qos.Profile, error) {
	p := qos.Profile{
		Durability:  qos.DurabilityVolatile,
		Reliability: qos.ReliabilityReliable,
		History:     qos.HistoryKeepLast,
		Depth:       defaultPublisherDepth,
	}
	if t.Reliability != "" {
		if err := p.Reliability.UnmarshalText([]byte(t.Reliability)); err != nil {
			return p, err
		}
	}
	if t.Durability != "" {
		if err := p.Durability.UnmarshalText([]byte(t.Durability)); err != nil {
			return p, err
		}
	}
	if t.Depth > 0 {
		p.Depth = t.Depth
	}
	return p, nil
}
