package qos

import (
	"fmt"
	"time"
)

// Profile is the full set of delivery parameters for one endpoint.
type Profile struct {
	Durability              Durability    `json:"durability" yaml:"durability"`
	Reliability             Reliability   `json:"reliability" yaml:"reliability"`
	History                 History       `json:"history" yaml:"history"`
	Depth                   int           `json:"depth" yaml:"depth"`
	Lifespan                time.Duration `json:"lifespan" yaml:"lifespan"`
	Deadline                time.Duration `json:"deadline" yaml:"deadline"`
	Liveliness              Liveliness    `json:"liveliness" yaml:"liveliness"`
	LivelinessLeaseDuration time.Duration `json:"liveliness_lease_duration" yaml:"liveliness_lease_duration"`
}

// Default is the most permissive subscriber profile. A best-effort, volatile
// reader matches any publisher, so a subscription can always be created even
// when no publisher is known yet.
func Default() Profile {
	return Profile{
		Durability:  DurabilityVolatile,
		Reliability: ReliabilityBestEffort,
		History:     HistoryKeepLast,
		Depth:       1,
	}
}

// FromPublisher mirrors a publisher's profile for a subscriber.
func FromPublisher(pub Profile) Profile {
	return Profile{
		Durability:              pub.Durability,
		Reliability:             pub.Reliability,
		History:                 pub.History,
		Depth:                   pub.Depth,
		Lifespan:                pub.Lifespan,
		Deadline:                pub.Deadline,
		Liveliness:              pub.Liveliness,
		LivelinessLeaseDuration: pub.LivelinessLeaseDuration,
	}
}

// String renders the profile in a compact form for logs.
func (p Profile) String() string {
	return fmt.Sprintf("%s/%s/%s(%d)", p.Reliability, p.Durability, p.History, p.Depth)
}
