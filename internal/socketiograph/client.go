package socketiograph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/qos"
)

// Bridge events.
const (
	EventResolveType   = "graph:resolve_type"
	EventPublishers    = "graph:publishers"
	EventSubscriptions = "graph:subscriptions"
	EventSubscribe     = "graph:subscribe"
	EventUnsubscribe   = "graph:unsubscribe"
	EventMessage       = "graph:message"
)

const defaultRequestTimeout = 2 * time.Second

var (
	// ErrNotConnected is returned when a request is made on a closed or
	// dropped connection.
	ErrNotConnected = errors.New("introspection bridge not connected")
	// ErrRemote wraps an error reported by the bridge.
	ErrRemote = errors.New("introspection bridge error")
)

// Client implements graph.Graph over socket.io.
type Client struct {
	conn    conn
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.RWMutex
	subs map[string]*subscription
}

var _ graph.Graph = (*Client)(nil)

// Dial connects to the bridge described by cfg. A nil clock uses the wall
// clock for message timestamps.
func Dial(ctx context.Context, cfg config.Introspection, clk clock.Clock) (*Client, error) {
	sc, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newClient(ctx, sc, cfg.Timeout, clk), nil
}

func newClient(ctx context.Context, c conn, timeout time.Duration, clk clock.Clock) *Client {
	if clk == nil {
		clk = clock.New()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	client := &Client{
		conn:    c,
		clock:   clk,
		timeout: timeout,
		logger:  ctxlog.FromContext(ctx).With("backend", config.BackendSocketIO),
		subs:    make(map[string]*subscription),
	}
	c.on(EventMessage, client.onMessage)
	return client
}

// ResolveType implements graph.Graph.
func (c *Client) ResolveType(ctx context.Context, topic string) (string, bool, error) {
	var out struct {
		Type  string `json:"type"`
		Found bool   `json:"found"`
	}
	if err := c.request(ctx, EventResolveType, map[string]any{"topic": topic}, &out); err != nil {
		return "", false, err
	}
	return out.Type, out.Found && out.Type != "", nil
}

// PublishersOf implements graph.Graph.
func (c *Client) PublishersOf(ctx context.Context, topic string) ([]graph.PublisherInfo, error) {
	out := []graph.PublisherInfo{}
	if err := c.request(ctx, EventPublishers, map[string]any{"topic": topic}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubscriptionsOf implements graph.Graph.
func (c *Client) SubscriptionsOf(ctx context.Context, node graph.NodeRef) ([]graph.TopicType, error) {
	payload := map[string]any{
		"node": map[string]any{"name": node.Name, "namespace": node.Namespace},
	}
	out := []graph.TopicType{}
	if err := c.request(ctx, EventSubscriptions, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe implements graph.Graph. The subscription is registered before
// the request is sent so that no early sample is dropped.
func (c *Client) Subscribe(ctx context.Context, topic, typeDescriptor string, profile qos.Profile, handler graph.MessageHandler) (graph.Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("subscribe to %s: nil handler", topic)
	}
	wireQoS, err := toWire(profile)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
	}

	sub := &subscription{id: uuid.NewString(), topic: topic, handler: handler, client: c}
	c.mu.Lock()
	c.subs[sub.id] = sub
	c.mu.Unlock()

	payload := map[string]any{
		"id":    sub.id,
		"topic": topic,
		"type":  typeDescriptor,
		"qos":   wireQoS,
	}
	if err := c.request(ctx, EventSubscribe, payload, nil); err != nil {
		c.forget(sub.id)
		return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	return sub, nil
}

// Now implements graph.Graph.
func (c *Client) Now() time.Time {
	return c.clock.Now()
}

// Close drops every subscription and disconnects.
func (c *Client) Close() error {
	c.mu.Lock()
	c.subs = make(map[string]*subscription)
	c.mu.Unlock()
	c.conn.close()
	return nil
}

type ackResult struct {
	args []any
	err  error
}

// request emits event with payload and decodes the acknowledged data into
// out, which may be nil.
func (c *Client) request(ctx context.Context, event string, payload any, out any) error {
	if !c.conn.connected() {
		return fmt.Errorf("%s: %w", event, ErrNotConnected)
	}

	replies := make(chan ackResult, 1)
	ack := func(args []any, err error) {
		replies <- ackResult{args: args, err: err}
	}
	if err := c.conn.emit(event, c.timeout, payload, ack); err != nil {
		return fmt.Errorf("%s: %w", event, err)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", event, ctx.Err())
	case r := <-replies:
		if r.err != nil {
			return fmt.Errorf("%s: %w", event, r.err)
		}
		if err := decodeAck(r.args, out); err != nil {
			return fmt.Errorf("%s: %w", event, err)
		}
		return nil
	}
}

type envelope struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func decodeAck(args []any, out any) error {
	if len(args) == 0 {
		return errors.New("empty acknowledgement")
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return fmt.Errorf("failed to encode acknowledgement: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed acknowledgement: %w", err)
	}
	if env.Error != "" {
		return fmt.Errorf("%w: %s", ErrRemote, env.Error)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("malformed acknowledgement data: %w", err)
	}
	return nil
}

// toWire converts v into plain JSON values so the socket.io encoder never
// has to reflect over domain types.
func toWire(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type messageEvent struct {
	Subscription string `json:"subscription"`
	Topic        string `json:"topic"`
	Payload      []byte `json:"payload"`
}

func (c *Client) onMessage(args ...any) {
	if len(args) == 0 {
		return
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		c.logger.Warn("Dropping undecodable message event.", "error", err)
		return
	}
	var ev messageEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		c.logger.Warn("Dropping undecodable message event.", "error", err)
		return
	}

	c.mu.RLock()
	sub, ok := c.subs[ev.Subscription]
	c.mu.RUnlock()
	if !ok {
		c.logger.Debug("Dropping message for unknown subscription.", "subscription", ev.Subscription, "topic", ev.Topic)
		return
	}
	sub.handler(graph.Message{Topic: sub.topic, ReceivedAt: c.clock.Now(), Payload: ev.Payload})
}

func (c *Client) forget(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subs[id]; !ok {
		return false
	}
	delete(c.subs, id)
	return true
}
