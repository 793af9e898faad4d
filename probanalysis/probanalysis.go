// Package probanalysis propagates probability-not-reachable through the
// same bucket machinery package pathenum uses for path counting, folding in
// each node's demand and (optionally) a self-congestion discount.
package probanalysis

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/topo"
	"github.com/RustamC/wotan/wlog"
)

// Mode selects the self-congestion discounting scheme.
type Mode int

const (
	// ModeNone applies no discount: demand_effective(v) == v.Demand.
	ModeNone Mode = iota
	// ModeRadius reads a polar-indexed, cross-job-persistent discount from
	// the node's History, keyed on the Manhattan offsets from this job's
	// source tile and from its sink tile.
	ModeRadius
	// ModePathDependence discounts using a per-job record of what the same
	// physical edge already contributed to a node's demand during the
	// OTHER direction's pass of this same job (see congestion.go).
	ModePathDependence
)

// Config selects the self-congestion scheme and its parameters.
type Config struct {
	Mode Mode
	// Radius bounds how far (Manhattan distance from the job's source or
	// sink tile) ModeRadius will look up history for; beyond it the discount is
	// 0. Unused by the other modes.
	Radius int
}

// Endpoint is the (x,y) tile a job's source or sink sits at, used only by
// ModeRadius to compute the polar offset against a node's own position.
type Endpoint struct{ X, Y int }

// Merger propagates probability-not-reachable. One Merger is constructed
// per job by package worker, so ModePathDependence's discount ledger is
// naturally job-scoped.
type Merger struct {
	cfg     Config
	source  Endpoint
	sink    Endpoint
	counter prometheus.Counter // may be nil: no metrics wired

	edgeDemand edgeLedger // ModePathDependence only
}

// New returns a probability-analysis Merger for one job. source/sink are
// the job's tile coordinates, consulted only by ModeRadius. counter, if
// non-nil, is incremented every time a computed probability is clamped
// beyond tolerance; pass nil to skip metrics entirely.
func New(cfg Config, source, sink Endpoint, counter prometheus.Counter) *Merger {
	return &Merger{cfg: cfg, source: source, sink: sink, counter: counter, edgeDemand: newEdgeLedger()}
}

// InitWeight seeds the pass root with probability-not-reachable 0: the
// source (or sink, on the backward pass) trivially reaches itself.
func (*Merger) InitWeight() float64 { return 0 }

// ZeroValue is the multiplicative identity: a node starts "certainly not
// reachable" (1) until a legal predecessor's contribution lowers it.
func (*Merger) ZeroValue() float64 { return 1 }

// Merge folds u's probability row into v's:
//
//	p_uv = 1 - (1 - source_buckets[u][w-wv]) * (1 - demand_effective(v))
//	source_buckets[v][w] *= p_uv   (combined independently across legal u)
func (m *Merger) Merge(store *rrgraph.Store, scratch *topo.Scratch, dir topo.Direction, u, v, wv int) int {
	uRow, vRow := rows(scratch, dir, u, v)
	min := -1
	for target := wv; target < len(vRow); target++ {
		srcW := target - wv
		p := uRow[srcW]
		if p >= 1 {
			continue // u certainly doesn't reach this bucket: identity, skip
		}
		de := m.demandEffective(store, dir, u, v, srcW)
		puv := clamp01("probanalysis.Merge", 1-(1-p)*(1-de), m.counter)
		vRow[target] *= puv
		if min == -1 {
			min = target
		}
	}
	if m.cfg.Mode == ModePathDependence {
		m.edgeDemand.record(dir, u, v, store.Node(v).Demand)
	}
	return min
}

func rows(scratch *topo.Scratch, dir topo.Direction, u, v int) (uRow, vRow []float64) {
	if dir == topo.Forward {
		return scratch.SourceBuckets[u], scratch.SourceBuckets[v]
	}
	return scratch.SinkBuckets[u], scratch.SinkBuckets[v]
}

// tol separates expected floating-point wobble from genuinely out-of-range
// values: within tol of [0,1] is silently clamped, anything further out is
// logged as a numerical warning.
const tol = 1e-6

// clamp01 forces a computed probability into [0,1]. A clamp that exceeds
// tol is logged via wlog (not fatal) and, if counter is non-nil, counted.
func clamp01(context string, p float64, counter prometheus.Counter) float64 {
	switch {
	case p < -tol:
		wlog.Warn(context, p, 0)
		incClamped(counter)
		return 0
	case p < 0:
		return 0
	case p > 1+tol:
		wlog.Warn(context, p, 1)
		incClamped(counter)
		return 1
	case p > 1:
		return 1
	default:
		return p
	}
}

func incClamped(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

// Reachability computes the connection's final reachability figure from
// the forward pass's sink bucket row:
//
//	p_reach = 1 - Π_{w <= K} source_buckets[sink][w]
//
// counter, if non-nil, is incremented whenever the result needed clamping
// beyond tolerance.
func Reachability(scratch *topo.Scratch, sink int, counter prometheus.Counter) float64 {
	prod := 1.0
	for _, p := range scratch.SourceBuckets[sink] {
		prod *= p
	}
	return clamp01("probanalysis.Reachability", 1-prod, counter)
}
