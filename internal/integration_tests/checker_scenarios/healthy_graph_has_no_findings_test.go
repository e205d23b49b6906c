package integration_tests

import (
	"testing"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: a graph where every important topic delivers finishes after one
// round without findings.
func TestCheckerScenarios_HealthyGraph_HasNoFindings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeConfig(t, map[string]string{
		"main.hcl": `
checker {
  important_topics = ["/control/command/control_cmd", "/vehicle/status/velocity_status"]
  round_timeout    = "100ms"
}

topic "/control/command/control_cmd" {
  type   = "autoware_control_msgs/msg/Control"
  active = true
}
topic "/vehicle/status/velocity_status" {
  type        = "autoware_vehicle_msgs/msg/VelocityReport"
  active      = true
  reliability = "best_effort"
}

node "controller" {
  namespace = "/control"
  publishes = ["/control/command/control_cmd"]
}
node "vehicle_interface" {
  namespace = "/vehicle"
  publishes = ["/vehicle/status/velocity_status"]
}
`,
	})

	// --- Act ---
	probe, logs, err := runProbe(t, dir)

	// --- Assert ---
	require.NoError(t, err)
	report := probe.Report()
	require.Equal(t, 1, report.Rounds)
	require.False(t, report.HasFindings())
	for _, topic := range report.Topics {
		require.Equal(t, checker.StatusHealthy, topic.Status, topic.Topic)
		require.NotNil(t, topic.LastReceivedAt, topic.Topic)
	}
	require.Len(t, report.Topics, 2)
	require.Equal(t, 1, testutil.Count(t, logs, "Subscribed.", "topic", "/vehicle/status/velocity_status", "qos", "best_effort/volatile/keep_last(10)"))
}
