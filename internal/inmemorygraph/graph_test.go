package inmemorygraph

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reliable() qos.Profile {
	return qos.Profile{Reliability: qos.ReliabilityReliable, Durability: qos.DurabilityVolatile, History: qos.HistoryKeepLast, Depth: 10}
}

type collector struct {
	mu   sync.Mutex
	msgs []graph.Message
}

func (c *collector) handle(msg graph.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestGraph_Queries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	g := New(nil)
	g.AddTopic("/a", "std_msgs/msg/String")
	g.AddTopic("/b", "std_msgs/msg/Bool")
	g.AddTopic("/untyped", "")
	talker := nodeid.New("talker", "/demo")
	require.NoError(t, g.AddPublisher("/a", talker, reliable()))
	require.NoError(t, g.AddPublisher("/a", talker, reliable()))
	require.NoError(t, g.AddSubscription(talker, "/b"))

	// --- Act ---
	typ, ok, err := g.ResolveType(ctx, "/a")
	_, untypedOK, _ := g.ResolveType(ctx, "/untyped")
	_, missingOK, _ := g.ResolveType(ctx, "/missing")
	pubs, pubErr := g.PublishersOf(ctx, "/a")
	none, noneErr := g.PublishersOf(ctx, "/missing")
	subs, subErr := g.SubscriptionsOf(ctx, talker)
	_, unknownErr := g.SubscriptionsOf(ctx, nodeid.New("ghost", ""))

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "std_msgs/msg/String", typ)
	assert.False(t, untypedOK)
	assert.False(t, missingOK)

	require.NoError(t, pubErr)
	require.Len(t, pubs, 1, "re-adding a publisher must be idempotent")
	assert.Equal(t, "/demo/talker", pubs[0].Node.String())

	require.NoError(t, noneErr)
	assert.Empty(t, none)

	require.NoError(t, subErr)
	assert.Equal(t, []graph.TopicType{{Topic: "/b", Type: "std_msgs/msg/Bool"}}, subs)

	assert.True(t, errors.Is(unknownErr, ErrUnknownNode))
}

func TestGraph_BuilderErrors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := New(nil)
	n := nodeid.New("n", "")

	// --- Act & Assert ---
	assert.ErrorIs(t, g.AddPublisher("/x", n, reliable()), ErrUnknownTopic)
	assert.ErrorIs(t, g.AddSubscription(n, "/x"), ErrUnknownTopic)
	assert.ErrorIs(t, g.SetActive("/x", true), ErrUnknownTopic)
	_, err := g.Publish("/x", nil)
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestGraph_SubscribeActiveTopicDeliversOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	g := New(mock)
	g.AddTopic("/a", "std_msgs/msg/String")
	require.NoError(t, g.AddPublisher("/a", nodeid.New("talker", ""), reliable()))
	require.NoError(t, g.SetActive("/a", true))
	c := &collector{}

	// --- Act ---
	sub, err := g.Subscribe(context.Background(), "/a", "std_msgs/msg/String", qos.Default(), c.handle)
	require.NoError(t, err)
	g.Wait()

	// --- Assert ---
	require.Equal(t, 1, c.count())
	assert.Equal(t, "/a", c.msgs[0].Topic)
	assert.Equal(t, mock.Now(), c.msgs[0].ReceivedAt)
	assert.Equal(t, "/a", sub.Topic())
	assert.Equal(t, mock.Now(), g.Now())
}

func TestGraph_SubscribeRespectsQoSCompatibility(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		publisher qos.Profile
		reader    qos.Profile
		wantMsgs  int
	}{
		{name: "best effort reader matches reliable writer", publisher: reliable(), reader: qos.Default(), wantMsgs: 1},
		{name: "reliable reader rejects best effort writer", publisher: qos.Default(), reader: reliable(), wantMsgs: 0},
		{
			name:      "transient local reader rejects volatile writer",
			publisher: reliable(),
			reader:    qos.Profile{Reliability: qos.ReliabilityReliable, Durability: qos.DurabilityTransientLocal},
			wantMsgs:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			g := New(nil)
			g.AddTopic("/a", "std_msgs/msg/String")
			require.NoError(t, g.AddPublisher("/a", nodeid.New("talker", ""), tc.publisher))
			require.NoError(t, g.SetActive("/a", true))
			c := &collector{}

			// --- Act ---
			_, err := g.Subscribe(context.Background(), "/a", "std_msgs/msg/String", tc.reader, c.handle)
			g.Wait()

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.wantMsgs, c.count())
		})
	}
}

func TestGraph_SubscribeErrors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	g := New(nil)
	g.AddTopic("/a", "std_msgs/msg/String")
	c := &collector{}

	// --- Act ---
	_, unknownErr := g.Subscribe(ctx, "/missing", "std_msgs/msg/String", qos.Default(), c.handle)
	_, mismatchErr := g.Subscribe(ctx, "/a", "std_msgs/msg/Bool", qos.Default(), c.handle)
	_, nilErr := g.Subscribe(ctx, "/a", "std_msgs/msg/String", qos.Default(), nil)

	// --- Assert ---
	assert.ErrorIs(t, unknownErr, ErrUnknownTopic)
	assert.ErrorContains(t, mismatchErr, "does not match advertised type")
	assert.ErrorContains(t, nilErr, "nil handler")
}

func TestGraph_PublishAndClose(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	g := New(nil)
	g.AddTopic("/a", "std_msgs/msg/String")
	c := &collector{}
	sub, err := g.Subscribe(ctx, "/a", "std_msgs/msg/String", qos.Default(), c.handle)
	require.NoError(t, err)

	// --- Act ---
	n, err := g.Publish("/a", []byte("hello"))
	require.NoError(t, err)
	g.Wait()
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	after, err := g.Publish("/a", []byte("ignored"))
	require.NoError(t, err)
	g.Wait()

	// --- Assert ---
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, after)
	require.Equal(t, 1, c.count())
	assert.Equal(t, []byte("hello"), c.msgs[0].Payload)
	assert.Equal(t, 0, g.SubscriberCount("/a"))
}

func TestFromSnapshot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	snap := &config.Snapshot{
		Topics: []*config.SnapshotTopic{
			{Name: "/a", Type: "std_msgs/msg/String", Active: true, Reliability: "best_effort", Depth: 3},
			{Name: "/b", Type: "std_msgs/msg/Bool"},
		},
		Nodes: []*config.SnapshotNode{
			{Name: "planner", Namespace: "/planning", Publishes: []string{"/a"}, Subscribes: []string{"/b"}},
		},
	}

	// --- Act ---
	g, err := FromSnapshot(snap, nil)

	// --- Assert ---
	require.NoError(t, err)
	pubs, _ := g.PublishersOf(ctx, "/a")
	require.Len(t, pubs, 1)
	assert.Equal(t, "/planning/planner", pubs[0].Node.String())
	assert.Equal(t, qos.ReliabilityBestEffort, pubs[0].QoS.Reliability)
	assert.Equal(t, qos.DurabilityVolatile, pubs[0].QoS.Durability)
	assert.Equal(t, 3, pubs[0].QoS.Depth)

	subs, err := g.SubscriptionsOf(ctx, nodeid.New("planner", "/planning"))
	require.NoError(t, err)
	assert.Equal(t, []graph.TopicType{{Topic: "/b", Type: "std_msgs/msg/Bool"}}, subs)
}

func TestFromSnapshot_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		snap    *config.Snapshot
		wantErr string
	}{
		{
			name:    "bad reliability",
			snap:    &config.Snapshot{Topics: []*config.SnapshotTopic{{Name: "/a", Type: "t/msg/T", Reliability: "sometimes"}}},
			wantErr: `unknown reliability policy "sometimes"`,
		},
		{
			name:    "publishes undeclared topic",
			snap:    &config.Snapshot{Nodes: []*config.SnapshotNode{{Name: "n", Publishes: []string{"/nowhere"}}}},
			wantErr: "unknown topic",
		},
		{
			name:    "subscribes undeclared topic",
			snap:    &config.Snapshot{Nodes: []*config.SnapshotNode{{Name: "n", Subscribes: []string{"/nowhere"}}}},
			wantErr: "unknown topic",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			_, err := FromSnapshot(tc.snap, nil)

			// --- Assert ---
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
