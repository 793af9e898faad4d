// Package topo implements the cycle-breaking topological traverser shared
// by path enumeration (package pathenum) and probability analysis (package
// probanalysis). It orchestrates a partial topological order over a
// DAG-with-cycles using a FIFO "ready" queue plus an ordered "waiting" set:
// when ready starves, the lightest-keyed waiting node is committed anyway,
// which is what lets traversal make progress through strongly connected
// components.
//
// Per-job state (Scratch) is owned exclusively by the goroutine running one
// job; nothing in here is shared across jobs, so no locks. The genuinely
// cross-job-shared state (self-congestion history, node demand) lives on
// rrgraph.Node instead; the history is guarded by the Store's per-node
// mutex (see package probanalysis), and demand is rewritten only between
// pool runs.
package topo

import "github.com/RustamC/wotan/rrgraph"

// Direction selects which of the two mirrored passes the Engine is running.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Scratch is one job's topological-traversal state, sized to K+1 buckets
// per node where K is the job's maximum allowed path weight. Reused across
// jobs via a sync.Pool and cleared by Reset before each job.
type Scratch struct {
	k int

	doneFromSource []bool
	doneFromSink   []bool

	timesVisitedFromSource []int
	timesVisitedFromSink   []int

	numLegalInNodes  []int // cached; -1 = uncomputed
	numLegalOutNodes []int

	level []int

	// firstWeight is the lightest path weight at which a node has so far
	// received a merge contribution; it is the waiting-set's primary sort
	// key.
	firstWeight []int

	SourceBuckets [][]float64 // SourceBuckets[v][w], len K+1 each
	SinkBuckets   [][]float64
}

const unset = -1
const infiniteWeight = int(^uint(0) >> 1)

// NewScratch returns an empty Scratch; Reset sizes it for a job's node
// count and K.
func NewScratch(store *rrgraph.Store) *Scratch {
	return &Scratch{}
}

// Reset clears all scratch fields and (re)allocates bucket rows of length
// k+1. Rows are resliced in place when capacity allows, so a pooled Scratch
// only pays allocation on its first, largest job.
func (s *Scratch) Reset(n, k int) {
	s.k = k
	s.doneFromSource = growBool(s.doneFromSource, n)
	s.doneFromSink = growBool(s.doneFromSink, n)
	s.timesVisitedFromSource = growInt(s.timesVisitedFromSource, n, 0)
	s.timesVisitedFromSink = growInt(s.timesVisitedFromSink, n, 0)
	s.numLegalInNodes = growInt(s.numLegalInNodes, n, unset)
	s.numLegalOutNodes = growInt(s.numLegalOutNodes, n, unset)
	s.level = growInt(s.level, n, 0)
	s.firstWeight = growInt(s.firstWeight, n, infiniteWeight)

	if cap(s.SourceBuckets) < n {
		s.SourceBuckets = make([][]float64, n)
		s.SinkBuckets = make([][]float64, n)
	} else {
		s.SourceBuckets = s.SourceBuckets[:n]
		s.SinkBuckets = s.SinkBuckets[:n]
	}
	for i := 0; i < n; i++ {
		s.SourceBuckets[i] = growFloat(s.SourceBuckets[i], k+1, 0)
		s.SinkBuckets[i] = growFloat(s.SinkBuckets[i], k+1, 0)
	}
}

// resetDirection clears the done/arrival/bucket state for one direction
// and reinitializes that direction's bucket rows to identity, so a single
// Scratch can be reused across the multiple Engine.Run calls one job makes
// (distance oracle aside: path enumeration runs a Forward and a Backward
// pass, and probability analysis a Forward pass, preceded by a Backward
// pass in ModePathDependence, all against the same node set).
// num_legal_in_nodes/num_legal_out_nodes are deliberately left untouched —
// they depend only on the Distance Oracle's legality, which is constant
// for the whole job.
func (s *Scratch) resetDirection(dir Direction, identity, rootInit float64, root int) {
	done := s.doneFromSource
	visited := s.timesVisitedFromSource
	buckets := s.SourceBuckets
	if dir == Backward {
		done = s.doneFromSink
		visited = s.timesVisitedFromSink
		buckets = s.SinkBuckets
	}
	for i := range done {
		done[i] = false
		visited[i] = 0
	}
	for i := range s.firstWeight {
		s.firstWeight[i] = infiniteWeight
	}
	for v := range buckets {
		row := buckets[v]
		for w := range row {
			row[w] = identity
		}
	}
	buckets[root][0] = rootInit
}

func growBool(s []bool, n int) []bool {
	if cap(s) < n {
		return make([]bool, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = false
	}
	return s
}

func growInt(s []int, n, fill int) []int {
	if cap(s) < n {
		s = make([]int, n)
	} else {
		s = s[:n]
	}
	for i := range s {
		s[i] = fill
	}
	return s
}

func growFloat(s []float64, n int, fill float64) []float64 {
	if cap(s) < n {
		s = make([]float64, n)
	} else {
		s = s[:n]
	}
	for i := range s {
		s[i] = fill
	}
	return s
}
