package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMalformedDescriptor is returned for descriptors not shaped "pkg/msg/Name".
	ErrMalformedDescriptor = errors.New("malformed message type descriptor")
	// ErrUnknownPackage is returned when no pack provides the descriptor's package.
	ErrUnknownPackage = errors.New("unknown message package")
	// ErrUnknownType is returned when the package is known but the type is not.
	ErrUnknownType = errors.New("unknown message type")
)

var (
	packagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	typePattern    = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// splitDescriptor splits "pkg/msg/Name" into its package and type name.
func splitDescriptor(descriptor string) (pkg, name string, err error) {
	parts := strings.Split(descriptor, "/")
	if len(parts) != 3 || parts[1] != "msg" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedDescriptor, descriptor)
	}
	if !packagePattern.MatchString(parts[0]) || !typePattern.MatchString(parts[2]) {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedDescriptor, descriptor)
	}
	return parts[0], parts[2], nil
}
