package socketiograph

import (
	"context"

	"github.com/specialistvlad/topicprobe/internal/graph"
)

type subscription struct {
	id      string
	topic   string
	handler graph.MessageHandler
	client  *Client
}

func (s *subscription) Topic() string {
	return s.topic
}

// Close stops local dispatch immediately and asks the bridge to tear the
// subscription down. Closing twice is a no-op.
func (s *subscription) Close() error {
	if !s.client.forget(s.id) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.client.timeout)
	defer cancel()
	return s.client.request(ctx, EventUnsubscribe, map[string]any{"id": s.id}, nil)
}
