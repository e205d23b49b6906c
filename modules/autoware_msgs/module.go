// Package autoware_msgs registers the message types carried by the topics the
// checker inspects by default.
package autoware_msgs

import "github.com/specialistvlad/topicprobe/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

type entry struct {
	name        string
	description string
}

var packs = []struct {
	pkg   string
	types []entry
}{
	{"autoware_control_msgs", []entry{
		{"Control", "Lateral and longitudinal control command."},
		{"Lateral", ""},
		{"Longitudinal", ""},
	}},
	{"autoware_vehicle_msgs", []entry{
		{"GearCommand", "Requested gear."},
		{"GearReport", ""},
		{"TurnIndicatorsCommand", "Requested turn indicator state."},
		{"TurnIndicatorsReport", ""},
		{"HazardLightsCommand", ""},
		{"SteeringReport", ""},
		{"VelocityReport", ""},
		{"ControlModeReport", ""},
	}},
	{"autoware_planning_msgs", []entry{
		{"Trajectory", "Planned trajectory."},
		{"LaneletRoute", "Route on the lanelet map."},
		{"Path", ""},
	}},
	{"autoware_perception_msgs", []entry{
		{"PredictedObjects", "Tracked objects with predicted paths."},
		{"DetectedObjects", ""},
		{"TrackedObjects", ""},
		{"TrafficLightGroupArray", "Recognised traffic signal states."},
	}},
	{"autoware_map_msgs", []entry{
		{"LaneletMapBin", ""},
	}},
	{"autoware_adapi_v1_msgs", []entry{
		{"OperationModeState", ""},
		{"RouteState", ""},
	}},
}

// Register registers every package of the pack.
func (m *Module) Register(r *registry.Registry) {
	for _, p := range packs {
		r.RegisterPackage(p.pkg)
		for _, t := range p.types {
			r.RegisterType(p.pkg+"/msg/"+t.name, t.description)
		}
	}
}
