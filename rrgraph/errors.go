package rrgraph

import "errors"

// Sentinel errors for Store construction and validation. Callers branch on
// these with errors.Is; wrapped context is added with %w at the call site.
var (
	ErrDuplicateNode  = errors.New("rrgraph: duplicate node id")
	ErrUnknownNode    = errors.New("rrgraph: edge references unknown node")
	ErrPinWithoutSide = errors.New("rrgraph: pin node has no side")
	ErrPtcOutOfRange  = errors.New("rrgraph: ptc index exceeds channel width")
	ErrLookupMismatch = errors.New("rrgraph: lookup index cross-check failed")
	ErrBadBoundingBox = errors.New("rrgraph: xlow>xhigh or ylow>yhigh")
	ErrEdgeAsymmetry  = errors.New("rrgraph: out-edge has no matching in-edge")
	ErrNegativeWeight = errors.New("rrgraph: node weight below zero")
	ErrNegativeDemand = errors.New("rrgraph: node demand below zero")
)
