// Package graph defines the contract the checker uses to look at a live
// publish/subscribe graph: which type a topic carries, who publishes it, what
// a node subscribes to, and a way to listen on a topic.
//
// # Role
//
// The checker never talks to the middleware directly. Every question it asks
// goes through the Graph interface, so the round and trace algorithm only
// sees names, publishers, subscriptions and messages.
//
// # Implementations
//
//	┌──────────────────────────────┐
//	│        checker.Checker       │
//	└──────────────┬───────────────┘
//	               │ graph.Graph
//	       ┌───────┴────────┐
//	       ▼                ▼
//	┌─────────────┐  ┌──────────────┐
//	│inmemorygraph│  │ socketiograph│
//	│ (snapshot)  │  │ (bridge)     │
//	└─────────────┘  └──────────────┘
//
// **inmemorygraph** holds nodes, topics and edges in memory and delivers
// messages on topics marked active. It backs offline diagnosis and tests.
//
// **socketiograph** forwards every query to an introspection bridge running
// next to the middleware and receives message notifications as events.
//
// # Thread-Safety
//
// Implementations must be safe for concurrent use. MessageHandler callbacks may
// be invoked from any goroutine, concurrently with each other and with the
// checker's own goroutine.
package graph
