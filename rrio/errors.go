package rrio

import "errors"

// Sentinel load errors, all fatal. Structural
// failures that the parsed data itself can't express (duplicate ids,
// dangling edges, lookup mismatches) are detected by rrgraph.NewStore and
// surface as rrgraph's own sentinels instead of these.
var (
	ErrUnknownRRType    = errors.New("rrio: unrecognized node type attribute")
	ErrUnknownSide      = errors.New("rrio: unrecognized side attribute")
	ErrUnknownDirection = errors.New("rrio: unrecognized direction attribute")
	ErrMissingSide      = errors.New("rrio: pin node is missing its side attribute")
	ErrUnknownBlockType = errors.New("rrio: grid references unknown block_type_id")
)
