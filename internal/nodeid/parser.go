package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single name token, e.g. `planning` or `node_1`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_~][a-zA-Z0-9_]*$`)

// Parse creates an Address from its fully-qualified string form. A name with
// no leading slash is treated as living in the root namespace.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("node name cannot be empty")
	}
	trimmed := strings.TrimPrefix(raw, "/")
	if trimmed == "" {
		return Address{}, fmt.Errorf("node name cannot be just the root namespace")
	}

	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if segment == "" {
			return Address{}, fmt.Errorf("node name %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Address{}, fmt.Errorf("invalid segment %q in node name %q", segment, raw)
		}
	}

	name := segments[len(segments)-1]
	if len(segments) == 1 {
		return New(name, RootNamespace), nil
	}
	return New(name, "/"+strings.Join(segments[:len(segments)-1], "/")), nil
}
