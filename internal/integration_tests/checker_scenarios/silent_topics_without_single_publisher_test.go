package integration_tests

import (
	"testing"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: silent topics with no publisher or several publishers are not
// reported as stuck.
func TestCheckerScenarios_SilentTopics_WithoutSinglePublisher(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeConfig(t, map[string]string{
		"main.hcl": `
checker {
  important_topics = ["/orphan", "/shared_output"]
  round_timeout    = "50ms"
}

topic "/orphan"        { type = "std_msgs/msg/String" }
topic "/shared_output" { type = "std_msgs/msg/String" }

node "primary" {
  publishes = ["/shared_output"]
}
node "backup" {
  publishes = ["/shared_output"]
}
`,
	})

	// --- Act ---
	probe, logs, err := runProbe(t, dir)

	// --- Assert ---
	require.NoError(t, err)
	report := probe.Report()
	require.Empty(t, report.Stuck)
	require.False(t, report.HasFindings())

	status, _ := report.StatusOf("/orphan")
	require.Equal(t, checker.StatusNoPublisher, status)
	status, _ = report.StatusOf("/shared_output")
	require.Equal(t, checker.StatusAmbiguous, status)

	require.Equal(t, 1, testutil.Count(t, logs, "Topic has unexpected state.", "topic", "/orphan", "reason", "no publisher"))
	require.Zero(t, testutil.Count(t, logs, "Topic is stuck."))
}
