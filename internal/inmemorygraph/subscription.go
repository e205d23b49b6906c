package inmemorygraph

import "github.com/specialistvlad/topicprobe/internal/graph"

type subscription struct {
	id      int
	topic   string
	handler graph.MessageHandler
	graph   *Graph
}

func (s *subscription) Topic() string {
	return s.topic
}

// Close removes the subscription. Closing twice is a no-op.
func (s *subscription) Close() error {
	s.graph.mu.Lock()
	defer s.graph.mu.Unlock()

	delete(s.graph.subs, s.id)
	return nil
}
