/*
Package valuenode implements the animatable value graph.

Every animatable parameter of a scene is a Node: a typed function of time that
can be evaluated at any instant. Nodes come in a closed set of kinds:

  - Const: a fixed value.
  - Animated: a list of waypoints interpolated over time.
  - Linkable: a composite whose value is computed from an ordered, named set of
    child links (its vocabulary) by a Linkable variant.
  - Placeholder: a sentinel standing in for a forward reference by id.

Nodes live in a Graph, which indexes them by GUID, delivers change events to a
Dispatcher and garbage-collects nodes nothing references any more.

# Structure

A node may have many parents (the graph is a DAG, never a tree). Parents are
other nodes, layers, or holders such as a List. Replace rewires every parent of
a node to another node. SetLink rejects edits that would create a cycle, so
recursive evaluation never needs a cycle breaker.

# Export

A node with a non-empty id is exported. Exported nodes are registered in a
List by id and are shared, never duplicated, by Clone.

# Concurrency

The graph is single-threaded: all mutation and evaluation must happen on one
goroutine. Change events are delivered synchronously on the mutating call stack.
*/
package valuenode
