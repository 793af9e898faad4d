// Package vsource synthesizes virtual sources: enumerating "backward
// through an input pin" requires a synthetic SOURCE feeding a bounded
// predecessor set of that pin, since the pin itself has no real source.
package vsource

import "github.com/RustamC/wotan/rrgraph"

// Predecessor is one routing node collected by the bounded backward walk,
// with its estimated arrival probability. Level is hop count from the pin;
// Prob decays with level (see Synthesize).
type Predecessor struct {
	NodeID int
	Level  int
	Prob   float64
}

// VirtualSource is the result of Synthesize: the pin it was built for, the
// node id of the synthetic SOURCE now attached to the store, and the
// predecessor set it feeds.
type VirtualSource struct {
	Pin          int
	NodeID       int
	Predecessors []Predecessor
}

// Synthesize runs a bounded backward walk from pin over in-edges up to
// maxDepth hops, collecting every routing node reached (deduplicated,
// first arrival wins — a node's Prob is 1/level for the fewest-hop level
// it was first reached at), then attaches a synthetic SOURCE node whose
// out-edges target every collected predecessor.
//
// pin must be an IPIN with populated InEdges (rrgraph.BuildReverseEdges
// must have been run, at least filtered to IPIN, before calling this).
func Synthesize(store *rrgraph.Store, pin int, maxDepth int) (*VirtualSource, error) {
	if store.Node(pin).Type != rrgraph.IPIN {
		return nil, ErrNotIPIN
	}
	if maxDepth < 1 {
		return nil, ErrBadDepth
	}

	visited := map[int]bool{pin: true}
	frontier := []int{pin}
	var preds []Predecessor

	for level := 1; level <= maxDepth && len(frontier) > 0; level++ {
		var next []int
		prob := 1.0 / float64(level) // decaying arrival confidence per hop
		for _, u := range frontier {
			for _, e := range store.Node(u).InEdges {
				if visited[e.To] {
					continue
				}
				visited[e.To] = true
				preds = append(preds, Predecessor{NodeID: e.To, Level: level, Prob: prob})
				next = append(next, e.To)
			}
		}
		frontier = next
	}

	if len(preds) == 0 {
		return nil, ErrNoPredecessors
	}

	ids := make([]int, len(preds))
	for i, p := range preds {
		ids[i] = p.NodeID
	}
	vsID := store.AttachVirtualSource(pin, ids)
	return &VirtualSource{Pin: pin, NodeID: vsID, Predecessors: preds}, nil
}
