package qos

import "fmt"

// Durability controls whether late-joining subscribers receive old samples.
type Durability int

const (
	DurabilitySystemDefault Durability = iota
	DurabilityTransientLocal
	DurabilityVolatile
)

// Reliability controls whether the middleware retries lost samples.
type Reliability int

const (
	ReliabilitySystemDefault Reliability = iota
	ReliabilityReliable
	ReliabilityBestEffort
)

// History controls how samples are queued.
type History int

const (
	HistorySystemDefault History = iota
	HistoryKeepLast
	HistoryKeepAll
)

// Liveliness controls how a publisher asserts it is alive.
type Liveliness int

const (
	LivelinessSystemDefault Liveliness = iota
	LivelinessAutomatic
	LivelinessManualByTopic
)

var (
	durabilityNames  = []string{"system_default", "transient_local", "volatile"}
	reliabilityNames = []string{"system_default", "reliable", "best_effort"}
	historyNames     = []string{"system_default", "keep_last", "keep_all"}
	livelinessNames  = []string{"system_default", "automatic", "manual_by_topic"}
)

func (d Durability) String() string  { return nameOf(durabilityNames, int(d)) }
func (r Reliability) String() string { return nameOf(reliabilityNames, int(r)) }
func (h History) String() string     { return nameOf(historyNames, int(h)) }
func (l Liveliness) String() string  { return nameOf(livelinessNames, int(l)) }

func (d Durability) MarshalText() ([]byte, error)  { return []byte(d.String()), nil }
func (r Reliability) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
func (h History) MarshalText() ([]byte, error)     { return []byte(h.String()), nil }
func (l Liveliness) MarshalText() ([]byte, error)  { return []byte(l.String()), nil }

func (d *Durability) UnmarshalText(b []byte) error {
	v, err := indexOf(durabilityNames, "durability", string(b))
	*d = Durability(v)
	return err
}

func (r *Reliability) UnmarshalText(b []byte) error {
	v, err := indexOf(reliabilityNames, "reliability", string(b))
	*r = Reliability(v)
	return err
}

func (h *History) UnmarshalText(b []byte) error {
	v, err := indexOf(historyNames, "history", string(b))
	*h = History(v)
	return err
}

func (l *Liveliness) UnmarshalText(b []byte) error {
	v, err := indexOf(livelinessNames, "liveliness", string(b))
	*l = Liveliness(v)
	return err
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func indexOf(names []string, kind, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s policy %q", kind, s)
}
