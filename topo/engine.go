package topo

import (
	"fmt"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/ssdist"
)

// Merger is implemented by the two passes built on top of the Topological
// Engine: path enumeration (package pathenum, BY_PATH_WEIGHT/BY_PATH_HOPS
// bucket accumulation) and probability analysis (package probanalysis,
// probability-not-reachable propagation). The Engine is pass-agnostic; it
// only drives traversal order and bucket-row bookkeeping.
type Merger interface {
	// InitWeight is the value seeded into the pass root's bucket[0] — 1 for
	// path counting (one path of weight/hops zero), or 0 for
	// probability-not-reachable (the root is trivially reached).
	InitWeight() float64

	// ZeroValue is the identity every non-root bucket entry starts from —
	// 0 for path counting (an accumulating sum) or 1 for probability
	// analysis (an accumulating product). Engine.Run re-seeds every bucket
	// row with this value at the start of each pass, since one Scratch is
	// reused across the several passes a single job runs.
	ZeroValue() float64

	// Merge folds u's bucket row into v's bucket row across one edge, where
	// wv is u's own weight (the node being left, not v). It returns the
	// lowest bucket index it wrote this call, or -1 if nothing changed
	// (used only to seed the waiting-set's primary sort key — ties are
	// broken by the distance oracle's static distance).
	Merge(store *rrgraph.Store, scratch *Scratch, dir Direction, u, v, wv int) int
}

// ErrAlreadyDone signals a structural invariant violation: the traversal
// revisited a node after it was already marked done, which should be
// impossible given the legality/arrival-count bookkeeping.
var ErrAlreadyDone = fmt.Errorf("topo: node marked done was revisited")

// Engine drives one topological pass.
type Engine struct{}

// Run performs one pass (Forward from source, or Backward from sink) using
// oracle for legality/distance and merger for the pass-specific bucket
// semantics. Forward populates scratch.SourceBuckets; Backward populates
// scratch.SinkBuckets.
func (Engine) Run(store *rrgraph.Store, oracle *ssdist.Oracle, scratch *Scratch, source, sink int, dir Direction, merger Merger) error {
	root, terminal := source, sink
	if dir == Backward {
		root, terminal = sink, source
	}
	scratch.resetDirection(dir, merger.ZeroValue(), merger.InitWeight(), root)
	if !oracle.Legal(root) {
		// A root with no legal counterpart within K still seeds an empty
		// traversal; buckets stay at their zero/root-init value.
		return nil
	}

	scratch.firstWeight[root] = 0
	done := doneArr(scratch, dir)

	ready := make([]int, 0, 16)
	ready = append(ready, root)
	waiting := newWaitingQueue(len(scratch.level))

	for len(ready) > 0 || !waiting.empty() {
		var u int
		if len(ready) > 0 {
			u = ready[0]
			ready = ready[1:]
		} else {
			var ok bool
			u, ok = waiting.popMin()
			if !ok {
				break
			}
		}
		if done[u] {
			return ErrAlreadyDone
		}
		done[u] = true
		if u == terminal {
			continue // record terminal, do not expand beyond it
		}

		for _, v := range legalFrontier(store, oracle, scratch, u, dir) {
			if done[v] {
				// v was committed early to break a cycle; this straggler
				// contribution arrives too late to propagate and is dropped
				// (an under-count, never an over-count).
				continue
			}
			wv := destinationWeight(store, dir, u, v)
			minWeight := merger.Merge(store, scratch, dir, u, v, wv)
			if minWeight >= 0 && minWeight < scratch.firstWeight[v] {
				scratch.firstWeight[v] = minWeight
			}
			incrementArrival(scratch, dir, v)
			expected := expectedArrivals(store, oracle, scratch, v, dir)
			if arrivals(scratch, dir, v) >= expected {
				waiting.remove(v)
				if !done[v] {
					ready = append(ready, v)
				}
			} else {
				waiting.upsert(v, scratch.firstWeight[v], distanceOf(oracle, dir, v))
			}
		}
	}
	return nil
}

func doneArr(scratch *Scratch, dir Direction) []bool {
	if dir == Forward {
		return scratch.doneFromSource
	}
	return scratch.doneFromSink
}

func arrivals(scratch *Scratch, dir Direction, v int) int {
	if dir == Forward {
		return scratch.timesVisitedFromSource[v]
	}
	return scratch.timesVisitedFromSink[v]
}

func incrementArrival(scratch *Scratch, dir Direction, v int) {
	if dir == Forward {
		scratch.timesVisitedFromSource[v]++
	} else {
		scratch.timesVisitedFromSink[v]++
	}
}

func distanceOf(oracle *ssdist.Oracle, dir Direction, v int) int {
	if dir == Forward {
		return oracle.SourceDistance(v)
	}
	return oracle.SinkDistance(v)
}

// destinationWeight is the weight charged when crossing an edge during a
// pass. Both passes charge the weight of the node currently being expanded
// (u), not the neighbor being arrived at (v): this keeps the distance
// fields (ssdist) and the enumeration buckets (pathenum) from
// double-counting a node's own weight, which the legality check and the
// through-node path combination add back in explicitly.
func destinationWeight(store *rrgraph.Store, _ Direction, u, _ int) int {
	return store.Node(u).Weight
}

// legalFrontier returns u's legal neighbors for this pass: out-neighbors
// for Forward, in-neighbors (predecessors in the original graph) for
// Backward.
func legalFrontier(store *rrgraph.Store, oracle *ssdist.Oracle, scratch *Scratch, u int, dir Direction) []int {
	var edges []rrgraph.Edge
	if dir == Forward {
		edges = store.Node(u).OutEdges
	} else {
		edges = store.Node(u).InEdges
	}
	out := make([]int, 0, len(edges))
	for _, e := range edges {
		if oracle.Legal(e.To) {
			out = append(out, e.To)
		}
	}
	return out
}

// expectedArrivals returns v's cached num_legal_in_nodes (Forward) or
// num_legal_out_nodes (Backward), computing it on first use.
func expectedArrivals(store *rrgraph.Store, oracle *ssdist.Oracle, scratch *Scratch, v int, dir Direction) int {
	if dir == Forward {
		if scratch.numLegalInNodes[v] == unset {
			scratch.numLegalInNodes[v] = countLegal(store.Node(v).InEdges, oracle)
		}
		return scratch.numLegalInNodes[v]
	}
	if scratch.numLegalOutNodes[v] == unset {
		scratch.numLegalOutNodes[v] = countLegal(store.Node(v).OutEdges, oracle)
	}
	return scratch.numLegalOutNodes[v]
}

func countLegal(edges []rrgraph.Edge, oracle *ssdist.Oracle) int {
	n := 0
	for _, e := range edges {
		if oracle.Legal(e.To) {
			n++
		}
	}
	return n
}
