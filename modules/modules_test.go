package modules_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/topicprobe/internal/registry"
	"github.com/specialistvlad/topicprobe/modules/autoware_msgs"
	"github.com/specialistvlad/topicprobe/modules/common_msgs"
	"github.com/specialistvlad/topicprobe/modules/rcl_interfaces"
	"github.com/specialistvlad/topicprobe/modules/std_msgs"
	"github.com/stretchr/testify/require"
)

func TestModules_RegisterAndValidate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := registry.New()
	modules := []registry.Module{
		&std_msgs.Module{},
		&rcl_interfaces.Module{},
		&common_msgs.Module{},
		&autoware_msgs.Module{},
	}

	// --- Act ---
	for _, m := range modules {
		m.Register(r)
	}
	err := r.ValidateRegistry(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	for _, descriptor := range []string{
		"std_msgs/msg/String",
		"rcl_interfaces/msg/Log",
		"geometry_msgs/msg/PoseStamped",
		"autoware_control_msgs/msg/Control",
		"autoware_perception_msgs/msg/TrafficLightGroupArray",
	} {
		_, err := r.Lookup(descriptor)
		require.NoError(t, err, descriptor)
	}
}
