package worker

import (
	"context"
	"math"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/wlog"
)

// searchTolerance is how close SearchDemandMultiplier must land to target
// before accepting a probe.
const searchTolerance = 1e-6

const maxExpansions = 64
const maxBisections = 100

// SearchDemandMultiplier is a monotone binary search for the smallest
// demand multiplier at which the aggregate reliability over jobs drops to
// target, assuming that scaling every node's demand upward can only
// lower reliability. baseline holds each node id's unscaled demand
// (snapshotted by the caller before the first probe); Store's demand is
// mutated in place between probes and left at whatever the last probe set
// it to once the search returns — callers that need the original values
// restored should re-apply baseline themselves afterward.
func SearchDemandMultiplier(ctx context.Context, pool *Pool, jobs []Job, baseline map[int]float64, target float64) (multiplier float64, result *Result, err error) {
	lo, hi := 0.0, 1.0
	var probe *Result
	for i := 0; i < maxExpansions; i++ {
		applyMultiplier(pool.Store(), baseline, hi)
		probe, err = pool.Run(ctx, jobs)
		if err != nil {
			return 0, nil, err
		}
		wlog.Info("demand multiplier probe (expanding)", map[string]any{"multiplier": hi, "reliability": probe.Reliability})
		if probe.Reliability <= target {
			break
		}
		lo = hi
		hi *= 2
		if hi > 1e6 {
			return 0, nil, ErrDemandMultiplierUnreachable
		}
	}

	last := probe
	for i := 0; i < maxBisections; i++ {
		mid := (lo + hi) / 2
		applyMultiplier(pool.Store(), baseline, mid)
		probe, err = pool.Run(ctx, jobs)
		if err != nil {
			return 0, nil, err
		}
		last = probe
		wlog.Info("demand multiplier probe (bisecting)", map[string]any{"multiplier": mid, "reliability": probe.Reliability})
		if math.Abs(probe.Reliability-target) <= searchTolerance {
			return mid, probe, nil
		}
		if probe.Reliability > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, last, nil
}

// applyMultiplier rescales every node's demand in store to baseline[id]*m.
// baseline need not cover every node id: nodes absent from it (e.g. a
// virtual source synthesized after the snapshot was taken) are left alone.
func applyMultiplier(store *rrgraph.Store, baseline map[int]float64, m float64) {
	for id, d := range baseline {
		store.Node(id).Demand = d * m
	}
}

// SnapshotDemand captures every node's current demand, for a caller that
// wants to run SearchDemandMultiplier and then restore the original values
// afterward.
func SnapshotDemand(store *rrgraph.Store) map[int]float64 {
	n := store.NumNodes()
	snap := make(map[int]float64, n)
	for id := 0; id < n; id++ {
		snap[id] = store.Node(id).Demand
	}
	return snap
}
