package graph

// PublisherNodes extracts the node identities from a publisher list,
// preserving order.
func PublisherNodes(pubs []PublisherInfo) []NodeRef {
	nodes := make([]NodeRef, 0, len(pubs))
	for _, p := range pubs {
		nodes = append(nodes, p.Node)
	}
	return nodes
}
