package vsource

import "errors"

var (
	// ErrNotIPIN is returned when Synthesize is asked to build a virtual
	// source for a node that isn't an input pin.
	ErrNotIPIN = errors.New("vsource: node is not an IPIN")

	// ErrBadDepth is returned for a non-positive maxDepth.
	ErrBadDepth = errors.New("vsource: maxDepth must be >= 1")

	// ErrNoPredecessors is returned when the backward walk found nothing
	// within maxDepth hops — the pin has no usable predecessor set.
	ErrNoPredecessors = errors.New("vsource: no predecessors found within maxDepth")
)
