package inmemorygraph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
)

var (
	// ErrUnknownTopic is returned when an operation names a topic that was
	// never added.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrUnknownNode is returned when an operation names a node that was
	// never added.
	ErrUnknownNode = errors.New("unknown node")
)

type topicEntry struct {
	typ        string
	active     bool
	publishers []graph.PublisherInfo
}

type nodeEntry struct {
	ref           nodeid.Address
	subscriptions []string
}

// Graph implements graph.Graph using maps and a mutex for thread-safe
// concurrent access.
type Graph struct {
	clock clock.Clock

	mu     sync.RWMutex
	topics map[string]*topicEntry
	nodes  map[string]*nodeEntry // Key: fully-qualified node name
	subs   map[int]*subscription
	nextID int

	inflight sync.WaitGroup
}

var _ graph.Graph = (*Graph)(nil)

// New creates a new, empty in-memory graph. A nil clock uses the wall clock.
func New(clk clock.Clock) *Graph {
	if clk == nil {
		clk = clock.New()
	}
	return &Graph{
		clock:  clk,
		topics: make(map[string]*topicEntry),
		nodes:  make(map[string]*nodeEntry),
		subs:   make(map[int]*subscription),
	}
}

// ResolveType implements graph.Graph.
func (g *Graph) ResolveType(ctx context.Context, topic string) (string, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, ok := g.topics[topic]
	if !ok || t.typ == "" {
		return "", false, nil
	}
	return t.typ, true, nil
}

// PublishersOf implements graph.Graph. Unknown topics have no publishers.
func (g *Graph) PublishersOf(ctx context.Context, topic string) ([]graph.PublisherInfo, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, ok := g.topics[topic]
	if !ok {
		return []graph.PublisherInfo{}, nil
	}
	return append([]graph.PublisherInfo{}, t.publishers...), nil
}

// SubscriptionsOf implements graph.Graph.
func (g *Graph) SubscriptionsOf(ctx context.Context, node graph.NodeRef) ([]graph.TopicType, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[node.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	out := make([]graph.TopicType, 0, len(n.subscriptions))
	for _, topic := range n.subscriptions {
		out = append(out, graph.TopicType{Topic: topic, Type: g.topics[topic].typ})
	}
	return out, nil
}

// Subscribe implements graph.Graph.
func (g *Graph) Subscribe(ctx context.Context, topic, typeDescriptor string, profile qos.Profile, handler graph.MessageHandler) (graph.Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("subscribe to %s: nil handler", topic)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.topics[topic]
	if !ok {
		return nil, fmt.Errorf("subscribe to %s: %w", topic, ErrUnknownTopic)
	}
	if t.typ != typeDescriptor {
		return nil, fmt.Errorf("subscribe to %s: type %q does not match advertised type %q", topic, typeDescriptor, t.typ)
	}

	g.nextID++
	sub := &subscription{id: g.nextID, topic: topic, handler: handler, graph: g}
	g.subs[sub.id] = sub

	if t.active && compatibleWithAny(t.publishers, profile) {
		g.deliverLocked(sub, nil)
	}
	return sub, nil
}

// Now implements graph.Graph.
func (g *Graph) Now() time.Time {
	return g.clock.Now()
}

// Publish delivers payload to every open subscription on topic and returns
// how many deliveries were started.
func (g *Graph) Publish(topic string, payload []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.topics[topic]; !ok {
		return 0, fmt.Errorf("publish to %s: %w", topic, ErrUnknownTopic)
	}
	n := 0
	for _, sub := range g.subs {
		if sub.topic == topic {
			g.deliverLocked(sub, payload)
			n++
		}
	}
	return n, nil
}

// Wait blocks until every started delivery has returned.
func (g *Graph) Wait() {
	g.inflight.Wait()
}

// SubscriberCount returns the number of open subscriptions on topic.
func (g *Graph) SubscriberCount(topic string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, sub := range g.subs {
		if sub.topic == topic {
			n++
		}
	}
	return n
}

func (g *Graph) deliverLocked(sub *subscription, payload []byte) {
	msg := graph.Message{Topic: sub.topic, ReceivedAt: g.clock.Now(), Payload: payload}
	g.inflight.Add(1)
	go func() {
		defer g.inflight.Done()
		sub.handler(msg)
	}()
}

// compatibleWithAny reports whether a reader with profile would match at
// least one publisher. A reliable reader needs a reliable writer and a
// transient-local reader needs a transient-local writer.
func compatibleWithAny(pubs []graph.PublisherInfo, reader qos.Profile) bool {
	for _, p := range pubs {
		if reader.Reliability == qos.ReliabilityReliable && p.QoS.Reliability == qos.ReliabilityBestEffort {
			continue
		}
		if reader.Durability == qos.DurabilityTransientLocal && p.QoS.Durability == qos.DurabilityVolatile {
			continue
		}
		return true
	}
	return false
}
