// Package schema holds the HCL-specific structures decoded from
// configuration files before they are translated into config.Model.
package schema

import "github.com/hashicorp/hcl/v2"

// Checker represents the `checker` block. Its attributes are kept as a raw
// body and evaluated later, so that expressions can reference `env`.
type Checker struct {
	Body hcl.Body `hcl:",remain"`
}

// Introspection represents an `introspection "<backend>"` block.
type Introspection struct {
	Backend string   `hcl:"backend,label"`
	Body    hcl.Body `hcl:",remain"`
}

// MessageType represents a `message_type "<pkg/msg/Name>"` block.
type MessageType struct {
	Descriptor  string `hcl:"descriptor,label"`
	Description string `hcl:"description,optional"`
}

// Topic represents a `topic "<name>"` block of a snapshot graph.
type Topic struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Node represents a `node "<name>"` block of a snapshot graph.
type Node struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// File represents the top-level structure of any configuration file.
type File struct {
	Checkers      []*Checker       `hcl:"checker,block"`
	Introspection []*Introspection `hcl:"introspection,block"`
	MessageTypes  []*MessageType   `hcl:"message_type,block"`
	Topics        []*Topic         `hcl:"topic,block"`
	Nodes         []*Node          `hcl:"node,block"`
}
