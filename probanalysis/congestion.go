package probanalysis

import (
	"sync"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/topo"
)

// demandEffective computes
//
//	demand_effective(v) = min(1, v.demand - discount(v, u, w'))
//
// dispatching on the configured self-congestion mode.
func (m *Merger) demandEffective(store *rrgraph.Store, dir topo.Direction, u, v, w int) float64 {
	demand := store.Node(v).Demand
	var discount float64
	switch m.cfg.Mode {
	case ModeNone:
		discount = 0
	case ModeRadius:
		discount = m.radiusDiscount(store, v)
	case ModePathDependence:
		discount = m.edgeDemand.lookup(dir, u, v)
	}
	eff := demand - discount
	if eff < 0 {
		eff = 0
	}
	if eff > 1 {
		eff = 1
	}
	return eff
}

// --- ModePathDependence: per-job edge ledger -------------------------------
//
// Self-congestion is the artefactual demand a single analyzed connection
// contributes to its own path. Within one job, a given
// physical edge u->v is visited exactly once by the forward pass (as
// Merge(Forward, u, v, ...)) and exactly once by the backward pass (as
// Merge(Backward, v, u, ...) — the traversal direction is reversed, but it
// is the same edge of the original graph). Without a discount, v's full
// demand would be charged twice for the one physical track the analyzed
// connection actually occupies once: once while propagating reachability
// from the source side, again from the sink side. edgeLedger records what
// one pass attributed to v via this edge so the other pass, visiting the
// identical edge, discounts it instead of double-charging. Only the forward
// pass's output (SourceBuckets, read by Reachability) ever feeds the final
// figure, so package worker runs Backward before Forward for this mode,
// the ledger must already hold Backward's attribution by the time Forward's
// Merge looks it up, or the discount is always zero. ModeNone and ModeRadius
// never consult the ledger, so package worker skips the Backward pass
// entirely for them rather than compute a SinkBuckets row nothing reads.
//
// The discount could additionally be keyed by path-weight bucket, but the
// forward pass's weight coordinate (distance-from-source) and the backward
// pass's (distance-from-sink) are not directly comparable without further
// bookkeeping; one discount per directed edge per job is enough to prevent
// the double-charge described above.
type edgeLedger struct {
	mu     sync.Mutex // Merger is job-scoped but Merge can run from either pass; keep it safe regardless
	demand map[edgeKey]float64
}

type edgeKey struct{ from, to int }

func newEdgeLedger() edgeLedger {
	return edgeLedger{demand: make(map[edgeKey]float64)}
}

// record stores the demand this job's current pass attributed to v via the
// directed original-graph edge implied by (dir, u, v).
func (l *edgeLedger) record(dir topo.Direction, u, v int, demand float64) {
	from, to := originalEdge(dir, u, v)
	l.mu.Lock()
	l.demand[edgeKey{from, to}] = demand
	l.mu.Unlock()
}

// lookup returns whatever the OTHER pass already recorded for this edge, 0
// if that pass hasn't run yet or didn't traverse this edge.
func (l *edgeLedger) lookup(dir topo.Direction, u, v int) float64 {
	from, to := originalEdge(dir, u, v)
	l.mu.Lock()
	d := l.demand[edgeKey{from, to}]
	l.mu.Unlock()
	return d
}

// originalEdge normalizes a Merge call's (dir, u, v) to the directed edge
// of the underlying RR graph: forward's (u,v) already is the original edge;
// backward's (u,v) is the original edge traversed in reverse, i.e. (v,u).
func originalEdge(dir topo.Direction, u, v int) (from, to int) {
	if dir == topo.Forward {
		return u, v
	}
	return v, u
}

// --- ModeRadius: cross-job history -----------------------------------------

// radiusDiscount reads the polar-indexed history recorded against v, keyed
// on the Manhattan offset from this job's source tile (source class) and
// from its sink tile (sink class) to v's own (Xlow,Ylow). Contributions of
// the two classes add; demandEffective clamps the result. Returns 0 if v
// is outside the configured radius of both endpoints or has no recorded
// history yet.
func (m *Merger) radiusDiscount(store *rrgraph.Store, v int) float64 {
	if m.cfg.Radius <= 0 {
		return 0
	}
	return m.historyAt(store, v, m.source, rrgraph.HistorySource) +
		m.historyAt(store, v, m.sink, rrgraph.HistorySink)
}

func (m *Merger) historyAt(store *rrgraph.Store, v int, from Endpoint, class rrgraph.HistoryClass) float64 {
	node := store.Node(v)
	dx := node.Xlow - from.X
	dy := node.Ylow - from.Y
	r := abs(dx) + abs(dy)
	if r > m.cfg.Radius {
		return 0
	}
	store.Lock(v)
	defer store.Unlock(v)
	if node.History == nil || r >= len(node.History.Arcs) {
		return 0
	}
	arc := arcIndex(dx, dy, r)
	row := node.History.Arcs[r]
	if arc >= len(row) {
		return 0
	}
	return row[arc][class]
}

// RecordRadiusHistory writes an exponentially-blended observation into v's
// history, keyed on the offset from the given endpoint and the class that
// endpoint plays (source or sink). Package worker calls this after a job
// completes, once per legal node per endpoint — not from Merge itself,
// since the contribution a whole connection makes is only known once both
// passes have finished. The 0.5 blend is a simple damped running estimate.
func RecordRadiusHistory(store *rrgraph.Store, v, radius int, from Endpoint, class rrgraph.HistoryClass, observed float64) {
	node := store.Node(v)
	dx := node.Xlow - from.X
	dy := node.Ylow - from.Y
	r := abs(dx) + abs(dy)
	if r > radius {
		return
	}
	store.Lock(v)
	defer store.Unlock(v)
	if node.History == nil {
		node.History = &rrgraph.PathHistory{Radius: radius, Arcs: make([][][rrgraph.NumHistoryClasses]float64, radius+1)}
	}
	if r >= len(node.History.Arcs) {
		return
	}
	if node.History.Arcs[r] == nil {
		node.History.Arcs[r] = make([][rrgraph.NumHistoryClasses]float64, arcCount(r))
	}
	arc := arcIndex(dx, dy, r)
	if arc >= len(node.History.Arcs[r]) {
		return
	}
	prev := node.History.Arcs[r][arc][class]
	node.History.Arcs[r][arc][class] = 0.5*prev + 0.5*observed
}

// arcCount is the number of polar slots at Manhattan radius r: a single
// center point at r==0, else 4r points around the diamond.
func arcCount(r int) int {
	if r == 0 {
		return 1
	}
	return 4 * r
}

// arcIndex maps an (dx,dy) offset at Manhattan radius r to one of the 4r
// points around the diamond of that radius, walking the four edges of the
// diamond in a fixed, deterministic order.
func arcIndex(dx, dy, r int) int {
	if r == 0 {
		return 0
	}
	// Walk the diamond boundary starting at (r,0) and going counter-
	// clockwise through (0,r), (-r,0), (0,-r). The first edge owns both of
	// its corners (r+1 points), the second and third own their far corner
	// (r points each) and the last owns neither (r-1 points), so indices
	// cover 0..4r-1.
	switch {
	case dx >= 0 && dy >= 0:
		return dy // (r,0)..(0,r) -> 0..r
	case dx < 0 && dy >= 0:
		return r - dx // (0,r)..(-r,0) -> r+1..2r
	case dx <= 0 && dy < 0:
		return 2*r - dy // (-r,0)..(0,-r) -> 2r+1..3r
	default:
		return 3*r + dx // (0,-r)..(r,0) -> 3r+1..4r-1
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
