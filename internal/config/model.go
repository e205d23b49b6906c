package config

import "time"

// Introspection backends understood by the app.
const (
	BackendSnapshot = "snapshot"
	BackendSocketIO = "socketio"
)

// DefaultRoundTimeout is how long one observation round lasts.
const DefaultRoundTimeout = 5 * time.Second

// Model is the unified representation of the whole configuration.
type Model struct {
	Checker       CheckerSettings
	Introspection Introspection
	MessageTypes  map[string]*MessageTypeDefinition
	Snapshot      *Snapshot
}

// CheckerSettings drives the round loop.
type CheckerSettings struct {
	ImportantTopics []string      `probe:"important_topics"`
	IgnoreTopics    []string      `probe:"ignore_topics"`
	RoundTimeout    time.Duration `probe:"round_timeout"`
	// StalenessThreshold flags topics whose last message is older than this.
	// Zero disables the check.
	StalenessThreshold time.Duration `probe:"staleness_threshold"`
	// MaxRounds caps the number of rounds. Zero means no cap.
	MaxRounds int `probe:"max_rounds"`
}

// Introspection selects and configures the graph backend.
type Introspection struct {
	Backend            string
	URL                string        `probe:"url"`
	Namespace          string        `probe:"namespace"`
	Timeout            time.Duration `probe:"timeout"`
	InsecureSkipVerify bool          `probe:"insecure_skip_verify"`
}

// MessageTypeDefinition declares a message type that is not shipped as a
// built-in module.
type MessageTypeDefinition struct {
	Descriptor  string
	Description string
}

// Snapshot is an offline description of a pub/sub graph.
type Snapshot struct {
	Topics []*SnapshotTopic
	Nodes  []*SnapshotNode
}

// SnapshotTopic describes one topic of a snapshot graph.
type SnapshotTopic struct {
	Name        string
	Type        string `probe:"type"`
	Active      bool   `probe:"active"`
	Reliability string `probe:"reliability"`
	Durability  string `probe:"durability"`
	Depth       int    `probe:"depth"`
}

// SnapshotNode describes one node of a snapshot graph and its edges.
type SnapshotNode struct {
	Name       string
	Namespace  string   `probe:"namespace"`
	Publishes  []string `probe:"publishes"`
	Subscribes []string `probe:"subscribes"`
}

// DefaultImportantTopics are the topics checked when the configuration does
// not name any.
var DefaultImportantTopics = []string{
	"/control/command/control_cmd",
	"/control/trajectory_follower/control_cmd",
	"/control/shift_decider/gear_cmd",
	"/planning/scenario_planning/trajectory",
	"/planning/turn_indicators_cmd",
	"/planning/mission_planning/route",
	"/perception/traffic_light_recognition/traffic_signals",
	"/perception/object_recognition/objects",
}

// DefaultIgnoreTopics are framework bookkeeping topics that never have an
// application-level publisher.
var DefaultIgnoreTopics = []string{
	"/rosout",
	"/parameter_events",
}

// DefaultModel returns a model populated with every default.
func DefaultModel() *Model {
	return &Model{
		Checker: CheckerSettings{
			ImportantTopics: append([]string(nil), DefaultImportantTopics...),
			IgnoreTopics:    append([]string(nil), DefaultIgnoreTopics...),
			RoundTimeout:    DefaultRoundTimeout,
		},
		Introspection: Introspection{
			Backend: BackendSnapshot,
			Timeout: 2 * time.Second,
		},
		MessageTypes: make(map[string]*MessageTypeDefinition),
	}
}
