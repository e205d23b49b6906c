// Package checker implements the connectivity check and root-cause trace
// over a pub/sub graph.
//
// # How It Works
//
// A run is a sequence of rounds. Each round:
//
//  1. subscribes to every topic of the round that was never checked, using
//     the first publisher's QoS profile (or the permissive default)
//  2. waits for the round deadline, at which point the publishers of every
//     observed topic are resolved
//  3. classifies each observed topic; a silent topic with exactly one
//     publisher is stuck and reported once
//  4. traces every newly stuck topic one hop upstream: the topics its
//     publisher subscribes to are checked for missing publishers (a dead
//     end) or queued for the next round if they were never checked
//
// The run ends when a round queues nothing, when the round limit is reached
// or when the context is cancelled.
//
// # State
//
//	CheckedSet   topics ever subscribed to; only grows
//	ReportedSet  topics already reported stuck; only grows
//	FrontierSet  topics queued during tracing; emptied every round
//
// Observations live in a topicstore.Store that message callbacks and the
// deadline callback write concurrently. The sets are touched only by the
// goroutine calling Run.
package checker
