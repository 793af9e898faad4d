package topo

import "container/heap"

// waitingItem is one entry of the ordered waiting set, keyed lexicographic
// ascending on (weight, dist, id).
type waitingItem struct {
	weight int
	dist   int
	id     int
}

// waitingQueue is a lazy-decrease-key min-heap: a node may be pushed more
// than once as its key improves, and stale entries are skipped on pop by
// comparing against the node's current best key.
type waitingQueue struct {
	items []waitingItem
	// bestWeight/bestDist hold each node's current key so pop() can detect
	// and discard stale heap entries in O(1).
	bestWeight []int
	bestDist   []int
	inQueue    []bool
	liveCount  int
}

func newWaitingQueue(n int) *waitingQueue {
	q := &waitingQueue{}
	q.reset(n)
	return q
}

func (q *waitingQueue) reset(n int) {
	q.items = q.items[:0]
	q.bestWeight = growInt(q.bestWeight, n, infiniteWeight)
	q.bestDist = growInt(q.bestDist, n, infiniteWeight)
	q.inQueue = growBool(q.inQueue, n)
	q.liveCount = 0
}

// upsert ensures id is present in the waiting set with key (weight, dist),
// keeping only the lexicographically smallest key ever offered.
func (q *waitingQueue) upsert(id, weight, dist int) {
	if weight < q.bestWeight[id] || (weight == q.bestWeight[id] && dist < q.bestDist[id]) {
		q.bestWeight[id] = weight
		q.bestDist[id] = dist
	}
	if !q.inQueue[id] {
		q.liveCount++
	}
	q.inQueue[id] = true
	heap.Push((*waitingHeap)(q), waitingItem{weight: q.bestWeight[id], dist: q.bestDist[id], id: id})
}

// popMin pops the minimum live entry, discarding stale ones. ok is false
// once the set is empty.
func (q *waitingQueue) popMin() (id int, ok bool) {
	for len(q.items) > 0 {
		top := heap.Pop((*waitingHeap)(q)).(waitingItem)
		if !q.inQueue[top.id] {
			continue // already moved to ready by an earlier, fresher pop
		}
		if top.weight != q.bestWeight[top.id] || top.dist != q.bestDist[top.id] {
			continue // superseded by a better key pushed later
		}
		q.inQueue[top.id] = false
		q.liveCount--
		return top.id, true
	}
	return 0, false
}

func (q *waitingQueue) empty() bool { return q.liveCount == 0 }

// remove drops id from the live set without popping it, used when a node
// reaches its expected arrival count via the ready queue directly while an
// older, now-stale entry for it still sits in the heap.
func (q *waitingQueue) remove(id int) {
	if q.inQueue[id] {
		q.inQueue[id] = false
		q.liveCount--
	}
}

// waitingHeap adapts waitingQueue.items to container/heap.Interface.
type waitingHeap waitingQueue

func (h waitingHeap) Len() int { return len(h.items) }
func (h waitingHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.id < b.id
}
func (h waitingHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *waitingHeap) Push(x interface{}) {
	h.items = append(h.items, x.(waitingItem))
}
func (h *waitingHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
