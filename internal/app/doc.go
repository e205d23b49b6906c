// Package app wires one topicprobe run together. NewApp loads the
// configuration and builds the message type registry. Run connects the
// introspection backend, drives the checker alongside the health and metrics
// server, and writes the YAML report.
package app
