package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/topicprobe/internal/config"
)

// Sources of a registered type.
const (
	SourceBuiltin = "builtin"
	SourceConfig  = "config"
)

// Module is the interface that all built-in type packs must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredType is the adapter for one message type.
type RegisteredType struct {
	Descriptor  string
	Package     string
	Name        string
	Description string
	Source      string
}

// Registry holds the registered packages and message types for a single
// application instance.
type Registry struct {
	packages map[string]struct{}
	types    map[string]*RegisteredType
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		packages: make(map[string]struct{}),
		types:    make(map[string]*RegisteredType),
	}
}

// RegisterPackage declares a message package such as "std_msgs".
func (r *Registry) RegisterPackage(name string) {
	if _, exists := r.packages[name]; exists {
		panic(fmt.Sprintf("message package '%s' already registered", name))
	}
	slog.Debug("Registering message package.", "package", name)
	r.packages[name] = struct{}{}
}

// RegisterType registers a built-in message type. The descriptor is parsed
// leniently here; malformed entries are reported by ValidateRegistry.
func (r *Registry) RegisterType(descriptor, description string) {
	if _, exists := r.types[descriptor]; exists {
		panic(fmt.Sprintf("message type '%s' already registered", descriptor))
	}
	pkg, name, _ := splitDescriptor(descriptor)
	slog.Debug("Registering message type.", "type", descriptor)
	r.types[descriptor] = &RegisteredType{
		Descriptor:  descriptor,
		Package:     pkg,
		Name:        name,
		Description: description,
		Source:      SourceBuiltin,
	}
}

// PopulateDefinitionsFromModel adds the message types declared in the
// configuration. A declared type implicitly declares its package. Declaring
// a type that is already built in only overrides its description.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for descriptor, def := range model.MessageTypes {
		if existing, ok := r.types[descriptor]; ok {
			if def.Description != "" {
				existing.Description = def.Description
			}
			continue
		}
		pkg, name, _ := splitDescriptor(descriptor)
		if pkg != "" {
			r.packages[pkg] = struct{}{}
		}
		r.types[descriptor] = &RegisteredType{
			Descriptor:  descriptor,
			Package:     pkg,
			Name:        name,
			Description: def.Description,
			Source:      SourceConfig,
		}
	}
}

// Lookup returns the adapter registered for descriptor.
func (r *Registry) Lookup(descriptor string) (*RegisteredType, error) {
	pkg, _, err := splitDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	if t, ok := r.types[descriptor]; ok {
		return t, nil
	}
	if _, ok := r.packages[pkg]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, pkg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, descriptor)
}

// Descriptors returns every registered descriptor in sorted order.
func (r *Registry) Descriptors() []string {
	out := make([]string, 0, len(r.types))
	for d := range r.types {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}
