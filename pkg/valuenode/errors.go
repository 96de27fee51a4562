package valuenode

import "errors"

// ErrNotFound is returned when a lookup by id fails.
var ErrNotFound = errors.New("value node not found")

// ErrBadLinkName is returned when a slot name is not part of a node's vocabulary.
var ErrBadLinkName = errors.New("bad link name")

// ErrLinkRejected is returned when a structural edit is refused. The graph is
// left unchanged.
var ErrLinkRejected = errors.New("link rejected")

// ErrNotInvertible is returned by Inverse when no input can be solved for.
var ErrNotInvertible = errors.New("not invertible")

// ErrEmptyID is returned when an operation requires an exported id.
var ErrEmptyID = errors.New("empty id")
