package graph

import (
	"context"
	"time"

	"github.com/specialistvlad/topicprobe/internal/qos"
)

// Graph answers questions about the pub/sub graph and lets the caller listen
// on topics.
type Graph interface {
	// ResolveType returns the type descriptor of a topic, e.g.
	// "std_msgs/msg/String". The boolean is false when the topic is unknown
	// or carries no type.
	ResolveType(ctx context.Context, topic string) (string, bool, error)

	// PublishersOf returns every publisher currently advertising the topic.
	PublishersOf(ctx context.Context, topic string) ([]PublisherInfo, error)

	// SubscriptionsOf returns every topic the given node subscribes to.
	SubscriptionsOf(ctx context.Context, node NodeRef) ([]TopicType, error)

	// Subscribe creates a subscription with the given profile. The handler
	// is invoked once per delivered message, possibly concurrently.
	Subscribe(ctx context.Context, topic, typeDescriptor string, profile qos.Profile, handler MessageHandler) (Subscription, error)

	// Now returns the graph's notion of the current time.
	Now() time.Time
}

// Subscription is a handle on a live subscription.
type Subscription interface {
	Topic() string
	Close() error
}
