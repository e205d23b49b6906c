package checker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/inmemorygraph"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
	"github.com/specialistvlad/topicprobe/internal/registry"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

const stringType = "std_msgs/msg/String"

func newTypes() *registry.Registry {
	r := registry.New()
	r.RegisterPackage("std_msgs")
	r.RegisterType(stringType, "")
	return r
}

func publisherQoS() qos.Profile {
	return qos.Profile{Reliability: qos.ReliabilityReliable, Durability: qos.DurabilityVolatile, History: qos.HistoryKeepLast, Depth: 10}
}

// addTopic adds a std_msgs/String topic published by the given nodes.
func addTopic(t *testing.T, g *inmemorygraph.Graph, name string, active bool, publishers ...nodeid.Address) {
	t.Helper()
	g.AddTopic(name, stringType)
	for _, p := range publishers {
		require.NoError(t, g.AddPublisher(name, p, publisherQoS()))
	}
	require.NoError(t, g.SetActive(name, active))
}

func subscribes(t *testing.T, g *inmemorygraph.Graph, node nodeid.Address, topics ...string) {
	t.Helper()
	for _, topic := range topics {
		require.NoError(t, g.AddSubscription(node, topic))
	}
}

func settingsFor(important ...string) config.CheckerSettings {
	return config.CheckerSettings{
		ImportantTopics: important,
		IgnoreTopics:    []string{"/rosout", "/parameter_events"},
		RoundTimeout:    20 * time.Millisecond,
	}
}

func newTestChecker(t *testing.T, g graph.Graph, settings config.CheckerSettings, opts ...Option) (*Checker, context.Context, *testutil.SafeBuffer) {
	t.Helper()
	ctx, buf := testutil.NewLogContext(t)
	return New(g, newTypes(), settings, opts...), ctx, buf
}

type waiter interface {
	Wait()
}

// runManualRound performs one round without a deadline: subscribe, flush
// deliveries, resolve publishers, analyse.
func runManualRound(ctx context.Context, c *Checker, g waiter) []string {
	c.round++
	for _, topic := range c.important {
		if !c.checked.has(topic) {
			c.checkTopic(ctx, topic)
		}
	}
	g.Wait()
	c.finishRound(ctx, c.important)
	next := c.analyzeResults(ctx)
	if len(next) > 0 {
		c.important = next
	}
	return next
}

// faultyGraph wraps the in-memory graph with injectable failures and records
// the profiles used for subscriptions.
type faultyGraph struct {
	*inmemorygraph.Graph

	subscribeErr     error
	subscriptionsErr error
	resolveErr       error

	mu       sync.Mutex
	profiles map[string]qos.Profile
}

func newFaultyGraph() *faultyGraph {
	return &faultyGraph{Graph: inmemorygraph.New(nil), profiles: map[string]qos.Profile{}}
}

func (f *faultyGraph) ResolveType(ctx context.Context, topic string) (string, bool, error) {
	if f.resolveErr != nil {
		return "", false, f.resolveErr
	}
	return f.Graph.ResolveType(ctx, topic)
}

func (f *faultyGraph) SubscriptionsOf(ctx context.Context, node graph.NodeRef) ([]graph.TopicType, error) {
	if f.subscriptionsErr != nil {
		return nil, f.subscriptionsErr
	}
	return f.Graph.SubscriptionsOf(ctx, node)
}

func (f *faultyGraph) Subscribe(ctx context.Context, topic, typeDescriptor string, profile qos.Profile, handler graph.MessageHandler) (graph.Subscription, error) {
	f.mu.Lock()
	f.profiles[topic] = profile
	f.mu.Unlock()
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return f.Graph.Subscribe(ctx, topic, typeDescriptor, profile, handler)
}

func (f *faultyGraph) profileFor(topic string) (qos.Profile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[topic]
	return p, ok
}
