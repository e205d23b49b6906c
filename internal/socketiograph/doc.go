// Package socketiograph implements graph.Graph on top of a socket.io
// connection to an introspection bridge running next to the middleware.
//
// Every query is a single emit with an acknowledgement. The bridge answers
// with an envelope `{"error": "...", "data": ...}`; a non-empty error is
// surfaced as ErrRemote. Subscriptions are identified by an id chosen by the
// client, and the bridge pushes samples as `graph:message` events carrying
// that id.
//
//	client -> bridge   graph:resolve_type   {topic}
//	client -> bridge   graph:publishers     {topic}
//	client -> bridge   graph:subscriptions  {node: {name, namespace}}
//	client -> bridge   graph:subscribe      {id, topic, type, qos}
//	client -> bridge   graph:unsubscribe    {id}
//	bridge -> client   graph:message        {subscription, topic, payload}
package socketiograph
