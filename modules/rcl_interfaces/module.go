package rcl_interfaces

import "github.com/specialistvlad/topicprobe/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the framework bookkeeping types. Their topics are on the
// default ignore list, but they can still be checked explicitly.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPackage("rcl_interfaces")
	r.RegisterType("rcl_interfaces/msg/Log", "Log record published on /rosout.")
	r.RegisterType("rcl_interfaces/msg/ParameterEvent", "Parameter change published on /parameter_events.")
}
