// Package topicstore holds the per-topic observation state of a check run.
//
// # Purpose
//
// Every topic the checker subscribes to gets exactly one Observation. The
// observation accumulates across rounds: it is created when the topic is
// first selected for checking, updated by message-arrival callbacks and by
// the round-end publisher resolution, and never removed while a run is in
// progress.
//
// # Concurrency Model
//
// Unlike a per-key sync.Map, the store is guarded by a single sync.Mutex:
//   - **Arrival callbacks** write Received/LastReceivedAt at arbitrary times
//     from the introspection backend's goroutines
//   - **The deadline callback** writes Publishers once per round from the
//     clock's timer goroutine
//   - **The checker** reads consistent copies when it analyses a round
//
// Contention is low (one writer per topic per message plus a single deadline
// writer), so one coarse lock keeps the read side simple: Get and Snapshot
// return copies that can be inspected without holding the lock.
//
// # Ordering
//
// Topics are kept in insertion order. Analysis walks Topics() so that log
// output and reports are stable across runs.
package topicstore
