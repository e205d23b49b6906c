// Package config defines the format-agnostic configuration model for the
// checker, along with the Loader interface for reading it from disk.
//
// The `config.Model` is the single source of truth for the `app` and
// `checker` packages. Concrete loaders, such as the HCL one, are provided in
// separate packages.
package config
