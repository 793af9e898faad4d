// Package ssdist implements the per-job distance oracle: for one
// (source, sink) job, the weighted distances and hop counts from every node
// to the source and to the sink, plus the legality predicate those
// distances feed into the Topological Engine.
package ssdist

import (
	"container/heap"

	"github.com/RustamC/wotan/rrgraph"
)

// Oracle holds per-job scratch for one (source, sink) pair. It is not safe
// for concurrent use by more than one goroutine; the worker pool allocates
// one per job (see package worker), recycled through a sync.Pool.
type Oracle struct {
	store *rrgraph.Store
	k     int // max allowed path weight for this connection length

	sourceDistance []int
	sourceHops     []int
	visitedFromSrc []bool

	sinkDistance []int
	sinkHops     []int
	visitedFromSnk []bool
}

const infinite = int(^uint(0) >> 1)

// New allocates an Oracle sized for store's current node count. Reset must
// be called before each job (New itself does not run the BFS).
func New(store *rrgraph.Store) *Oracle {
	n := store.NumNodes()
	return &Oracle{
		store:          store,
		sourceDistance: make([]int, n),
		sourceHops:     make([]int, n),
		visitedFromSrc: make([]bool, n),
		sinkDistance:   make([]int, n),
		sinkHops:       make([]int, n),
		visitedFromSnk: make([]bool, n),
	}
}

// Reset clears the oracle's scratch and resizes it if the store has grown
// (e.g. a virtual source was attached since the last job) before running
// both BFSes for source/sink with bound k.
func (o *Oracle) Reset(source, sink, k int) {
	n := o.store.NumNodes()
	if cap(o.sourceDistance) < n {
		o.sourceDistance = make([]int, n)
		o.sourceHops = make([]int, n)
		o.visitedFromSrc = make([]bool, n)
		o.sinkDistance = make([]int, n)
		o.sinkHops = make([]int, n)
		o.visitedFromSnk = make([]bool, n)
	} else {
		o.sourceDistance = o.sourceDistance[:n]
		o.sourceHops = o.sourceHops[:n]
		o.visitedFromSrc = o.visitedFromSrc[:n]
		o.sinkDistance = o.sinkDistance[:n]
		o.sinkHops = o.sinkHops[:n]
		o.visitedFromSnk = o.visitedFromSnk[:n]
	}
	for i := 0; i < n; i++ {
		o.sourceDistance[i] = infinite
		o.sourceHops[i] = infinite
		o.visitedFromSrc[i] = false
		o.sinkDistance[i] = infinite
		o.sinkHops[i] = infinite
		o.visitedFromSnk[i] = false
	}
	o.k = k
	o.bfsForward(source)
	o.bfsBackward(sink)
}

// distItem is one entry of the Dijkstra frontier.
type distItem struct {
	node int
	dist int
}

// distHeap is a standard binary min-heap on dist, lazy-decrease-key (stale
// entries are dropped on pop by comparing against the best known distance),
// same pattern as topo's waiting set.
type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// bfsForward runs Dijkstra from source over out-edges, bounded by k: a
// node whose tentative distance would exceed k is never relaxed. Node
// weights vary, so a plain FIFO traversal cannot guarantee the shortest
// distance.
func (o *Oracle) bfsForward(source int) {
	o.sourceDistance[source] = 0
	o.sourceHops[source] = 0
	o.visitedFromSrc[source] = true
	h := &distHeap{{node: source, dist: 0}}
	for h.Len() > 0 {
		top := heap.Pop(h).(distItem)
		u := top.node
		if top.dist != o.sourceDistance[u] {
			continue // stale entry, superseded by a better relax
		}
		for _, e := range o.store.Node(u).OutEdges {
			v := e.To
			// Charge the weight of the node being *left* (u), not the one
			// arrived at (v): source_distance[v] must exclude v's own
			// weight so that Legal's source_distance+weight+sink_distance
			// charges v exactly once.
			dist := o.sourceDistance[u] + o.store.Node(u).Weight
			if dist > o.k {
				continue
			}
			if o.visitedFromSrc[v] && dist >= o.sourceDistance[v] {
				continue
			}
			o.visitedFromSrc[v] = true
			o.sourceDistance[v] = dist
			o.sourceHops[v] = o.sourceHops[u] + 1
			heap.Push(h, distItem{node: v, dist: dist})
		}
	}
}

// bfsBackward mirrors bfsForward over in-edges from sink.
func (o *Oracle) bfsBackward(sink int) {
	o.sinkDistance[sink] = 0
	o.sinkHops[sink] = 0
	o.visitedFromSnk[sink] = true
	h := &distHeap{{node: sink, dist: 0}}
	for h.Len() > 0 {
		top := heap.Pop(h).(distItem)
		u := top.node
		if top.dist != o.sinkDistance[u] {
			continue
		}
		for _, e := range o.store.Node(u).InEdges {
			v := e.To
			// Mirrors bfsForward: charge the weight of the node being left
			// (u) so sink_distance[v] excludes v's own weight.
			dist := o.sinkDistance[u] + o.store.Node(u).Weight
			if dist > o.k {
				continue
			}
			if o.visitedFromSnk[v] && dist >= o.sinkDistance[v] {
				continue
			}
			o.visitedFromSnk[v] = true
			o.sinkDistance[v] = dist
			o.sinkHops[v] = o.sinkHops[u] + 1
			heap.Push(h, distItem{node: v, dist: dist})
		}
	}
}

// Legal reports whether node v is admissible for enumeration in this job:
// reached from both directions and source_distance+weight+sink_distance<=K.
func (o *Oracle) Legal(v int) bool {
	if !o.visitedFromSrc[v] || !o.visitedFromSnk[v] {
		return false
	}
	return o.sourceDistance[v]+o.store.Node(v).Weight+o.sinkDistance[v] <= o.k
}

// SourceDistance returns the weighted distance from source to v (valid only
// if v was visited from source).
func (o *Oracle) SourceDistance(v int) int { return o.sourceDistance[v] }

// SinkDistance returns the weighted distance from v to sink.
func (o *Oracle) SinkDistance(v int) int { return o.sinkDistance[v] }

// SourceHops returns the unweighted hop count from source to v.
func (o *Oracle) SourceHops(v int) int { return o.sourceHops[v] }

// SinkHops returns the unweighted hop count from v to sink.
func (o *Oracle) SinkHops(v int) int { return o.sinkHops[v] }

// K returns the max allowed path weight for the current job.
func (o *Oracle) K() int { return o.k }
