package probanalysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/probanalysis"
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/ssdist"
	"github.com/RustamC/wotan/topo"
)

// buildDiamond builds 0->1, 0->2, 1->3, 2->3, all weight 1. demand1/demand2
// set node 1 and 2's demand.
func buildDiamond(t *testing.T, demand1, demand2 float64) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}, {To: 2, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}, Demand: demand1},
		{ID: 2, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}, Demand: demand2},
		{ID: 3, Type: rrgraph.SINK},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := [][]rrgraph.GridTile{{{}}}
	s, err := rrgraph.NewStore(nodes, switches, nil, grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

func runReachability(t *testing.T, store *rrgraph.Store, k int, mode probanalysis.Mode, merger *probanalysis.Merger) float64 {
	t.Helper()
	oracle := ssdist.New(store)
	oracle.Reset(0, 3, k)
	scratch := topo.NewScratch(store)
	scratch.Reset(store.NumNodes(), k)

	var e topo.Engine
	// Matching worker.Pool.runJob: only ModePathDependence needs the
	// Backward pass (it populates the edge ledger Forward's Merge looks
	// up), and it must run before Forward for the ledger to be non-empty.
	if mode == probanalysis.ModePathDependence {
		require.NoError(t, e.Run(store, oracle, scratch, 0, 3, topo.Backward, merger))
	}
	require.NoError(t, e.Run(store, oracle, scratch, 0, 3, topo.Forward, merger))
	return probanalysis.Reachability(scratch, 3, nil)
}

// buildLine is a 4-node single path 0->1->2->3 (no fan-in/fan-out), so every
// node has exactly one predecessor and one successor edge: the minimal
// fixture where a shared edge's demand can actually be looked up cross-pass
// by ModePathDependence (a diamond's parallel branches never share an edge,
// and a SINK's own demand is always 0, which swallows a discount on the
// last edge regardless of mode).
func buildLine(t *testing.T, demand1, demand2 float64) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 2, Switch: 0}}, Demand: demand1},
		{ID: 2, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}, Demand: demand2},
		{ID: 3, Type: rrgraph.SINK},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := [][]rrgraph.GridTile{{{}}}
	s, err := rrgraph.NewStore(nodes, switches, nil, grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

// TestReachability_PathDependence_DiffersFromNone guards against
// ModePathDependence silently behaving like ModeNone: node 2's demand is
// discounted by node 1's (recorded by the Backward pass against the shared
// edge 1->2 before Forward consults it), so reachability must come out
// strictly higher than the undiscounted figure.
func TestReachability_PathDependence_DiffersFromNone(t *testing.T) {
	// K=3: the line's minimal path weight is weight(1)+weight(2)+weight(3)
	// = 3 (each non-source node costs 1), so K must be
	// at least 3 for the sink to be legal at all and receive any merge.
	store := buildLine(t, 0.3, 0.6)
	none := probanalysis.New(probanalysis.Config{Mode: probanalysis.ModeNone}, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	gotNone := runReachability(t, store, 3, probanalysis.ModeNone, none)
	require.InDelta(t, 0.28, gotNone, 1e-6, "ModeNone p_reach")

	store = buildLine(t, 0.3, 0.6)
	pd := probanalysis.New(probanalysis.Config{Mode: probanalysis.ModePathDependence}, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	gotPD := runReachability(t, store, 3, probanalysis.ModePathDependence, pd)
	require.InDelta(t, 0.49, gotPD, 1e-6, "ModePathDependence p_reach")

	require.Greater(t, gotPD-gotNone, 1e-6, "ModePathDependence must differ from ModeNone")
}

// TestReachability_Radius_DiscountsRecordedHistory: with an empty history
// the radius discount is zero and radius mode matches ModeNone exactly;
// once history is recorded against the congested nodes, their effective
// demand drops and reachability rises by the blended amount.
func TestReachability_Radius_DiscountsRecordedHistory(t *testing.T) {
	store := buildLine(t, 0.3, 0.6)
	cfg := probanalysis.Config{Mode: probanalysis.ModeRadius, Radius: 3}

	fresh := probanalysis.New(cfg, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	got := runReachability(t, store, 3, probanalysis.ModeRadius, fresh)
	require.InDelta(t, 0.28, got, 1e-6, "empty history must behave like ModeNone")

	// Simulate earlier jobs through the same region: the 0.5 blend stores
	// half the observed value, so recording 0.6 leaves a 0.3 discount on
	// each node (source class; every node sits at radius 0 from the
	// zero-valued endpoint in this fixture). Effective demands become
	// 0.3-0.3=0 and 0.6-0.3=0.3, giving p_reach = (1-0)*(1-0.3) = 0.7.
	probanalysis.RecordRadiusHistory(store, 1, cfg.Radius, probanalysis.Endpoint{}, rrgraph.HistorySource, 0.6)
	probanalysis.RecordRadiusHistory(store, 2, cfg.Radius, probanalysis.Endpoint{}, rrgraph.HistorySource, 0.6)

	seeded := probanalysis.New(cfg, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	got = runReachability(t, store, 3, probanalysis.ModeRadius, seeded)
	require.InDelta(t, 0.7, got, 1e-6, "recorded history must discount demand")
}

// TestReachability_Diamond_NoDemand: with zero demand everywhere, the sink
// is certainly reachable.
func TestReachability_Diamond_NoDemand(t *testing.T) {
	store := buildDiamond(t, 0, 0)
	merger := probanalysis.New(probanalysis.Config{Mode: probanalysis.ModeNone}, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	got := runReachability(t, store, 2, probanalysis.ModeNone, merger)
	require.InDelta(t, 1.0, got, 1e-6, "p_reach")
}

// TestReachability_Diamond_Congested: demand(1)=demand(2)=0.5,
// independence gives p_reach = 1 - (0.5*0.5) = 0.75.
func TestReachability_Diamond_Congested(t *testing.T) {
	store := buildDiamond(t, 0.5, 0.5)
	merger := probanalysis.New(probanalysis.Config{Mode: probanalysis.ModeNone}, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	got := runReachability(t, store, 2, probanalysis.ModeNone, merger)
	require.InDelta(t, 0.75, got, 1e-6, "p_reach")
}

// TestReachability_ClampedToUnitInterval: whatever the inputs, the result
// must land in [0,1].
func TestReachability_ClampedToUnitInterval(t *testing.T) {
	store := buildDiamond(t, 1, 1)
	merger := probanalysis.New(probanalysis.Config{Mode: probanalysis.ModeNone}, probanalysis.Endpoint{}, probanalysis.Endpoint{}, nil)
	got := runReachability(t, store, 2, probanalysis.ModeNone, merger)
	require.GreaterOrEqual(t, got, 0.0)
	require.LessOrEqual(t, got, 1.0)
}
