package std_msgs

import "github.com/specialistvlad/topicprobe/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the std_msgs primitives with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPackage("std_msgs")
	r.RegisterType("std_msgs/msg/Bool", "A single boolean.")
	r.RegisterType("std_msgs/msg/Empty", "A message without fields, used as a trigger.")
	r.RegisterType("std_msgs/msg/Float32", "A single 32-bit float.")
	r.RegisterType("std_msgs/msg/Float64", "A single 64-bit float.")
	r.RegisterType("std_msgs/msg/Header", "Timestamp and coordinate frame id.")
	r.RegisterType("std_msgs/msg/Int32", "A single 32-bit signed integer.")
	r.RegisterType("std_msgs/msg/Int64", "A single 64-bit signed integer.")
	r.RegisterType("std_msgs/msg/String", "A single string.")
	r.RegisterType("std_msgs/msg/UInt8", "A single byte.")
}
