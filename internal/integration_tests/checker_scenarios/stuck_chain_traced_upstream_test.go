package integration_tests

import (
	"testing"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: a stuck topic is traced upstream round by round until the
// observed inputs are alive again.
func TestCheckerScenarios_StuckChain_TracedUpstream(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeConfig(t, map[string]string{
		"checker.hcl": `
checker {
  important_topics = ["/control/command/control_cmd"]
  round_timeout    = "100ms"
}
`,
		"graph.hcl": `
topic "/control/command/control_cmd" {
  type = "autoware_control_msgs/msg/Control"
}
topic "/planning/scenario_planning/trajectory" {
  type = "autoware_planning_msgs/msg/Trajectory"
}
topic "/perception/object_recognition/objects" {
  type   = "autoware_perception_msgs/msg/PredictedObjects"
  active = true
}

node "controller" {
  namespace  = "/control"
  publishes  = ["/control/command/control_cmd"]
  subscribes = ["/planning/scenario_planning/trajectory"]
}
node "planner" {
  namespace  = "/planning"
  publishes  = ["/planning/scenario_planning/trajectory"]
  subscribes = ["/perception/object_recognition/objects"]
}
node "tracker" {
  namespace = "/perception"
  publishes = ["/perception/object_recognition/objects"]
}
`,
	})

	// --- Act ---
	probe, logs, err := runProbe(t, dir)

	// --- Assert ---
	require.NoError(t, err)
	report := probe.Report()
	require.Equal(t, 3, report.Rounds)

	require.Len(t, report.Stuck, 2)
	require.Equal(t, "/control/command/control_cmd", report.Stuck[0].Topic)
	require.Equal(t, "/control/controller", report.Stuck[0].Publisher.String())
	require.Equal(t, "/planning/scenario_planning/trajectory", report.Stuck[1].Topic)
	require.Equal(t, "/planning/planner", report.Stuck[1].Publisher.String())

	status, ok := report.StatusOf("/perception/object_recognition/objects")
	require.True(t, ok)
	require.Equal(t, checker.StatusHealthy, status, "the planner's input is alive, so the planner is the root cause")

	require.Equal(t, 1, testutil.Count(t, logs, "Topics to check in the next round.", "round", "1", "topics", "[/planning/scenario_planning/trajectory]"))
	require.Equal(t, 1, testutil.Count(t, logs, "Topics to check in the next round.", "round", "2", "topics", "[/perception/object_recognition/objects]"))
}
