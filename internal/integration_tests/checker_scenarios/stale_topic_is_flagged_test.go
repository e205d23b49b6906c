package integration_tests

import (
	"testing"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: a topic that delivered once but not within the staleness
// threshold is flagged.
func TestCheckerScenarios_StaleTopic_IsFlagged(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeConfig(t, map[string]string{
		"main.hcl": `
checker {
  important_topics    = ["/latched", "/fresh"]
  round_timeout       = "200ms"
  staleness_threshold = "20ms"
}

topic "/latched" {
  type       = "std_msgs/msg/String"
  active     = true
  durability = "transient_local"
}

node "map_server" {
  publishes = ["/latched"]
}
`,
	})

	// --- Act ---
	probe, logs, err := runProbe(t, dir)

	// --- Assert ---
	require.NoError(t, err)
	report := probe.Report()
	status, ok := report.StatusOf("/latched")
	require.True(t, ok)
	require.Equal(t, checker.StatusStale, status)
	require.Equal(t, 1, testutil.Count(t, logs, "Topic is stale.", "topic", "/latched"))

	status, _ = report.StatusOf("/fresh")
	require.Equal(t, checker.StatusUnresolved, status, "/fresh is not part of the graph")
	require.Len(t, report.Unresolved, 1)
}
