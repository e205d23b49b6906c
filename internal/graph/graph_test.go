package graph

import (
	"testing"

	"github.com/specialistvlad/topicprobe/internal/nodeid"
	"github.com/specialistvlad/topicprobe/internal/qos"
	"github.com/stretchr/testify/assert"
)

func TestPublisherNodes_PreservesOrder(t *testing.T) {
	t.Parallel()

	pubs := []PublisherInfo{
		{Node: nodeid.New("b", "/x"), QoS: qos.Default()},
		{Node: nodeid.New("a", "/y")},
	}

	nodes := PublisherNodes(pubs)

	assert.Equal(t, []NodeRef{nodeid.New("b", "/x"), nodeid.New("a", "/y")}, nodes)
	assert.Empty(t, PublisherNodes(nil))
}
