package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// LogEntry is one decoded JSON log line.
type LogEntry map[string]any

// Level returns the entry's level, e.g. "WARN".
func (e LogEntry) Level() string {
	s, _ := e[slog.LevelKey].(string)
	return s
}

// Msg returns the entry's message.
func (e LogEntry) Msg() string {
	s, _ := e[slog.MessageKey].(string)
	return s
}

// Attr returns the entry's attribute rendered with fmt, or "" if absent.
func (e LogEntry) Attr(key string) string {
	v, ok := e[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// NewLogContext returns a context carrying a debug-level JSON logger that
// writes into a fresh buffer. Set TOPICPROBE_TEST_LOGS=true to dump the
// output after the test.
func NewLogContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("TOPICPROBE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// Entries decodes every JSON line in buf.
func Entries(t *testing.T, buf *SafeBuffer) []LogEntry {
	t.Helper()

	var out []LogEntry
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e), "log line is not JSON: %s", line)
		out = append(out, e)
	}
	return out
}

// Find returns the entries with the given message whose attributes match
// every key/value pair in attrs.
func Find(t *testing.T, buf *SafeBuffer, msg string, attrs ...string) []LogEntry {
	t.Helper()
	require.True(t, len(attrs)%2 == 0, "attrs must be key/value pairs")

	var out []LogEntry
	for _, e := range Entries(t, buf) {
		if e.Msg() != msg {
			continue
		}
		match := true
		for i := 0; i < len(attrs); i += 2 {
			if e.Attr(attrs[i]) != attrs[i+1] {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// Count is len(Find(...)).
func Count(t *testing.T, buf *SafeBuffer, msg string, attrs ...string) int {
	t.Helper()
	return len(Find(t, buf, msg, attrs...))
}
