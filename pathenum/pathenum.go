// Package pathenum counts legal source-to-sink paths: a topo.Merger that
// accumulates the number of distinct legal paths per weight (or hop)
// bucket, on top of the topological engine in package topo.
package pathenum

import (
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/topo"
)

// Mode selects the bucket index unit.
type Mode int

const (
	// ByWeight buckets paths by cumulative edge weight (BY_PATH_WEIGHT).
	ByWeight Mode = iota
	// ByHops buckets paths by hop count, ignoring edge weight (hops-mode).
	ByHops
)

// Merger counts legal paths into source_buckets/sink_buckets.
type Merger struct {
	Mode Mode
}

// New returns a path-counting Merger for the given bucket unit.
func New(mode Mode) Merger { return Merger{Mode: mode} }

// InitWeight seeds the pass root with exactly one path of weight/hops zero.
func (Merger) InitWeight() float64 { return 1 }

// ZeroValue is the additive identity: a node starts with zero paths until
// a legal predecessor contributes one.
func (Merger) ZeroValue() float64 { return 0 }

// Merge folds u's bucket row into v's:
//
//	for w in 0..=K-wv: buckets[v][w+wv] += buckets[u][w]
//
// with wv replaced by 1 in hops-mode.
func (m Merger) Merge(store *rrgraph.Store, scratch *topo.Scratch, dir topo.Direction, u, v, wv int) int {
	step := wv
	if m.Mode == ByHops {
		step = 1
	}
	uRow, vRow := rows(scratch, dir, u, v)
	min := -1
	for w := 0; w+step < len(uRow); w++ {
		if uRow[w] == 0 {
			continue
		}
		vRow[w+step] += uRow[w]
		if min == -1 {
			min = w + step
		}
	}
	return min
}

func rows(scratch *topo.Scratch, dir topo.Direction, u, v int) (uRow, vRow []float64) {
	if dir == topo.Forward {
		return scratch.SourceBuckets[u], scratch.SourceBuckets[v]
	}
	return scratch.SinkBuckets[u], scratch.SinkBuckets[v]
}

// PathsThrough combines both passes into the number of legal paths running
// through v:
//
//	paths(v) = Σ_{w1+wv+w2 ≤ K} source_buckets[v][w1] * sink_buckets[v][w2]
//
// Both Forward and Backward passes for this mode must already have run
// against scratch before calling this.
func PathsThrough(store *rrgraph.Store, scratch *topo.Scratch, v, k int, mode Mode) float64 {
	// In weight mode source_buckets[v]/sink_buckets[v] each exclude v's own
	// weight (every merge step charges the node being left, never the one
	// arrived at), so v's weight is added back exactly once via wv. In
	// hops-mode there is no analogous per-node unit to add back: a hop is a
	// property of an edge, and the edge into v is already the final entry
	// counted on the source side (and symmetrically on the sink side), so
	// wv is 0.
	wv := 0
	if mode != ByHops {
		wv = store.Node(v).Weight
	}
	srcRow, snkRow := scratch.SourceBuckets[v], scratch.SinkBuckets[v]
	total := 0.0
	for w1, sc := range srcRow {
		if sc == 0 {
			continue
		}
		maxW2 := k - wv - w1
		if maxW2 < 0 {
			continue
		}
		if maxW2 >= len(snkRow) {
			maxW2 = len(snkRow) - 1
		}
		for w2 := 0; w2 <= maxW2; w2++ {
			total += sc * snkRow[w2]
		}
	}
	return total
}
