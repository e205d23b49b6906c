package topicstore

import (
	"sync"
	"time"

	"github.com/specialistvlad/topicprobe/internal/nodeid"
)

// Observation is the accumulated state of one tracked topic.
type Observation struct {
	Topic string
	Type  string
	// Received is true once at least one message arrived in any round.
	Received bool
	// LastReceivedAt is the zero time until the first message arrives.
	LastReceivedAt time.Time
	MessageCount   uint64
	// Publishers is populated at round end, never from message traffic.
	Publishers []nodeid.Address
}

// HasLastReceived reports whether a message timestamp has been recorded.
func (o Observation) HasLastReceived() bool {
	return !o.LastReceivedAt.IsZero()
}

func (o *Observation) clone() Observation {
	c := *o
	if o.Publishers != nil {
		c.Publishers = append([]nodeid.Address(nil), o.Publishers...)
	}
	return c
}

// Store is a mutex-guarded, insertion-ordered map of observations.
type Store struct {
	mu    sync.Mutex
	order []string
	obs   map[string]*Observation
}

// New creates a new, empty topic store.
func New() *Store {
	return &Store{
		obs: make(map[string]*Observation),
	}
}

// Create starts tracking topic. Creating a topic that is already tracked is a
// no-op and returns false.
func (s *Store) Create(topic, typeDescriptor string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.obs[topic]; exists {
		return false
	}
	s.obs[topic] = &Observation{Topic: topic, Type: typeDescriptor}
	s.order = append(s.order, topic)
	return true
}

// Discard stops tracking topic. It is used to roll back a Create whose
// subscription could not be established.
func (s *Store) Discard(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.obs[topic]; !exists {
		return
	}
	delete(s.obs, topic)
	for i, t := range s.order {
		if t == topic {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// MarkReceived records a message arrival. Arrivals for untracked topics are
// ignored and reported as false.
func (s *Store) MarkReceived(topic string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.obs[topic]
	if !ok {
		return false
	}
	o.Received = true
	o.MessageCount++
	if at.After(o.LastReceivedAt) {
		o.LastReceivedAt = at
	}
	return true
}

// SetPublishers replaces the publisher list of a tracked topic.
func (s *Store) SetPublishers(topic string, publishers []nodeid.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.obs[topic]
	if !ok {
		return false
	}
	o.Publishers = append([]nodeid.Address(nil), publishers...)
	return true
}

// Get returns a copy of the observation for topic.
func (s *Store) Get(topic string) (Observation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.obs[topic]
	if !ok {
		return Observation{}, false
	}
	return o.clone(), true
}

// Has reports whether topic is tracked.
func (s *Store) Has(topic string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.obs[topic]
	return ok
}

// Topics returns the tracked topic names in insertion order.
func (s *Store) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.order...)
}

// Snapshot returns copies of every observation in insertion order.
func (s *Store) Snapshot() []Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Observation, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.obs[t].clone())
	}
	return out
}

// Len returns the number of tracked topics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.obs)
}
