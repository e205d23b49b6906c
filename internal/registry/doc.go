// Package registry provides the link-time table of message types the checker
// is able to subscribe to.
//
// Type descriptors have the form "pkg/msg/Name". Built-in type packs under
// modules/ register themselves through the Module interface when the
// application starts; configuration files may add further types with
// `message_type` blocks. Before the first round, ValidateRegistry makes sure
// every registered descriptor is well formed and belongs to a known package,
// so that a broken pack fails fast instead of producing per-topic errors.
package registry
