package graph

import (
	"time"

	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
)

// NodeRef is the identity of a node in the graph.
type NodeRef = nodeid.Address

// PublisherInfo describes one publisher endpoint on a topic.
type PublisherInfo struct {
	Node NodeRef     `json:"node"`
	QoS  qos.Profile `json:"qos"`
}

// TopicType pairs a topic with the type descriptor an endpoint uses for it.
type TopicType struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

// Message is a delivered sample. Payload is opaque to the checker.
type Message struct {
	Topic      string
	ReceivedAt time.Time
	Payload    []byte
}

// MessageHandler is invoked for every delivered message.
type MessageHandler func(msg Message)
