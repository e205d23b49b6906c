package app

import (
	"github.com/specialistvlad/topicprobe/internal/registry"
	"github.com/specialistvlad/topicprobe/modules/autoware_msgs"
	"github.com/specialistvlad/topicprobe/modules/common_msgs"
	"github.com/specialistvlad/topicprobe/modules/rcl_interfaces"
	"github.com/specialistvlad/topicprobe/modules/std_msgs"
)

// coreModules is the definitive list of all message type packs that are
// compiled into the topicprobe binary.
var coreModules = []registry.Module{
	&std_msgs.Module{},
	&rcl_interfaces.Module{},
	&common_msgs.Module{},
	&autoware_msgs.Module{},
}
