package nodeid

// RootNamespace is the namespace of nodes that are not nested anywhere.
const RootNamespace = "/"

// Address identifies a node by its base name and namespace.
type Address struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// New builds an Address, normalizing an empty namespace to the root.
func New(name, namespace string) Address {
	if namespace == "" {
		namespace = RootNamespace
	}
	return Address{Name: name, Namespace: namespace}
}
