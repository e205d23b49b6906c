package inmemorygraph

import (
	"fmt"

	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
)

// AddTopic adds a topic, or updates the type of an existing one.
func (g *Graph) AddTopic(name, typeDescriptor string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, exists := g.topics[name]; exists {
		t.typ = typeDescriptor
		return
	}
	g.topics[name] = &topicEntry{typ: typeDescriptor}
}

// AddNode adds a node. Adding the same node twice is not an error.
func (g *Graph) AddNode(ref nodeid.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(ref)
}

func (g *Graph) addNodeLocked(ref nodeid.Address) *nodeEntry {
	key := ref.String()
	if n, exists := g.nodes[key]; exists {
		return n
	}
	n := &nodeEntry{ref: ref}
	g.nodes[key] = n
	return n
}

// AddPublisher declares that node publishes topic with profile. The node is
// added implicitly.
func (g *Graph) AddPublisher(topic string, node nodeid.Address, profile qos.Profile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.topics[topic]
	if !ok {
		return fmt.Errorf("publisher %s on %s: %w", node, topic, ErrUnknownTopic)
	}
	g.addNodeLocked(node)
	for _, p := range t.publishers {
		if p.Node.Equal(node) {
			return nil
		}
	}
	t.publishers = append(t.publishers, graph.PublisherInfo{Node: node, QoS: profile})
	return nil
}

// AddSubscription declares that node subscribes to topic. The node is added
// implicitly.
func (g *Graph) AddSubscription(node nodeid.Address, topic string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.topics[topic]; !ok {
		return fmt.Errorf("subscription of %s to %s: %w", node, topic, ErrUnknownTopic)
	}
	n := g.addNodeLocked(node)
	for _, existing := range n.subscriptions {
		if existing == topic {
			return nil
		}
	}
	n.subscriptions = append(n.subscriptions, topic)
	return nil
}

// SetActive marks whether topic delivers a sample to new subscriptions.
func (g *Graph) SetActive(topic string, active bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.topics[topic]
	if !ok {
		return fmt.Errorf("set active on %s: %w", topic, ErrUnknownTopic)
	}
	t.active = active
	return nil
}
