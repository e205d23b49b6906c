/*
Package nodeid provides a structured representation for the identity of a node
in the pub/sub graph: a base name plus the namespace it lives in.

The canonical string form is the fully-qualified name, e.g.
`/planning/scenario_planning/motion_velocity_planner`, where everything before
the last slash is the namespace. A node in the root namespace renders as
`/name`.
*/
package nodeid
