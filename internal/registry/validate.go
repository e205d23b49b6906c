package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/topicprobe/internal/ctxlog"
)

// ValidateRegistry checks that every registered descriptor is well formed and
// belongs to a registered package.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, descriptor := range r.Descriptors() {
		t := r.types[descriptor]
		pkg, _, err := splitDescriptor(descriptor)
		if err != nil {
			errs = append(errs, fmt.Sprintf("type '%s' (%s): %v", descriptor, t.Source, err))
			continue
		}
		if _, ok := r.packages[pkg]; !ok {
			errs = append(errs, fmt.Sprintf("type '%s' (%s): package '%s' is not registered", descriptor, t.Source, pkg))
		}
	}

	empty := make([]string, 0)
	for pkg := range r.packages {
		if !r.hasTypesIn(pkg) {
			empty = append(empty, pkg)
		}
	}
	sort.Strings(empty)
	for _, pkg := range empty {
		logger.Warn("Message package registers no types.", "package", pkg)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "packages", len(r.packages), "types", len(r.types))
	return nil
}

func (r *Registry) hasTypesIn(pkg string) bool {
	for _, t := range r.types {
		if t.Package == pkg {
			return true
		}
	}
	return false
}
