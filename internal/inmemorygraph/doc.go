// Package inmemorygraph provides a simple, thread-safe, in-memory
// implementation of the graph.Graph interface.
//
// The graph is assembled with AddTopic, AddPublisher and AddSubscription,
// or loaded from a configuration snapshot with FromSnapshot. Topics marked
// active deliver one sample to every new subscription whose profile is
// compatible with at least one publisher; Publish injects further samples.
// Deliveries run on their own goroutines, like middleware callbacks would.
package inmemorygraph
