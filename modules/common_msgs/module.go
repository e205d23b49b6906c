// Package common_msgs registers the geometry, sensor, navigation and
// transform message packages shared by most stacks.
package common_msgs

import "github.com/specialistvlad/topicprobe/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

var packs = map[string][]string{
	"geometry_msgs": {
		"AccelWithCovarianceStamped",
		"Point",
		"Pose",
		"PoseStamped",
		"PoseWithCovarianceStamped",
		"Twist",
		"TwistStamped",
		"TwistWithCovarianceStamped",
	},
	"sensor_msgs": {
		"CameraInfo",
		"Image",
		"Imu",
		"NavSatFix",
		"PointCloud2",
	},
	"nav_msgs": {
		"OccupancyGrid",
		"Odometry",
		"Path",
	},
	"tf2_msgs": {
		"TFMessage",
	},
	"diagnostic_msgs": {
		"DiagnosticArray",
	},
}

// Register registers every package of the pack.
func (m *Module) Register(r *registry.Registry) {
	for pkg, names := range packs {
		r.RegisterPackage(pkg)
		for _, name := range names {
			r.RegisterType(pkg+"/msg/"+name, "")
		}
	}
}
