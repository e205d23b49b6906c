package nodeid

import "strings"

// String serializes the Address into its fully-qualified name.
func (a Address) String() string {
	ns := a.Namespace
	if ns == "" || ns == RootNamespace {
		return RootNamespace + a.Name
	}
	return strings.TrimSuffix(ns, "/") + "/" + a.Name
}

// Equal reports whether both addresses name the same node.
func (a Address) Equal(other Address) bool {
	return a.String() == other.String()
}

// IsZero reports whether the address has no name.
func (a Address) IsZero() bool {
	return a.Name == ""
}
