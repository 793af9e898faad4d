package topo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/ssdist"
	"github.com/RustamC/wotan/topo"
)

// countingMerger is a minimal path-counting Merger used only to exercise
// the Engine's traversal mechanics independent of pathenum/probanalysis.
type countingMerger struct{}

func (countingMerger) InitWeight() float64 { return 1 }
func (countingMerger) ZeroValue() float64  { return 0 }

func (countingMerger) Merge(store *rrgraph.Store, scratch *topo.Scratch, dir topo.Direction, u, v, wv int) int {
	var uRow, vRow []float64
	if dir == topo.Forward {
		uRow, vRow = scratch.SourceBuckets[u], scratch.SourceBuckets[v]
	} else {
		uRow, vRow = scratch.SinkBuckets[u], scratch.SinkBuckets[v]
	}
	min := -1
	for w := 0; w+wv < len(uRow); w++ {
		if uRow[w] == 0 {
			continue
		}
		vRow[w+wv] += uRow[w]
		if min == -1 {
			min = w + wv
		}
	}
	return min
}

// buildLine builds a 4-node line 0(SOURCE)->1(CHANX)->2(CHANX)->3(SINK),
// one buffered switch.
func buildLine(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 2, Switch: 0}}},
		{ID: 2, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}},
		{ID: 3, Type: rrgraph.SINK},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	s, err := rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
	require.NoError(t, err)
	return s
}

// buildDiamond builds two disjoint branch nodes 1,2 feeding a shared
// confluence node 3.
func buildDiamond(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}, {To: 2, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}},
		{ID: 2, Type: rrgraph.CHANY, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}},
		{ID: 3, Type: rrgraph.SINK},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	s, err := rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
	require.NoError(t, err)
	return s
}

// buildDiamondWithCycle builds a diamond plus a back-edge from the
// confluence node to one of the branch nodes, exercising the waiting-set's
// cycle-breaking commitment.
func buildDiamondWithCycle(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}, {To: 2, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}},
		{ID: 2, Type: rrgraph.CHANY, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}, {To: 1, Switch: 0}}},
		{ID: 3, Type: rrgraph.SINK},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	s, err := rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
	require.NoError(t, err)
	return s
}

func TestEngine_ForwardLine_CountsSinglePath(t *testing.T) {
	s := buildLine(t)
	oracle := ssdist.New(s)
	oracle.Reset(0, 3, 10)
	scratch := topo.NewScratch(s)
	scratch.Reset(s.NumNodes(), 10)

	var e topo.Engine
	require.NoError(t, e.Run(s, oracle, scratch, 0, 3, topo.Forward, countingMerger{}))

	total := 0.0
	for _, c := range scratch.SourceBuckets[3] {
		total += c
	}
	require.Equal(t, 1.0, total, "expected exactly one path to sink")
}

func TestEngine_ForwardDiamond_CountsTwoPaths(t *testing.T) {
	store := buildDiamond(t)

	oracle := ssdist.New(store)
	oracle.Reset(0, 3, 10)
	scratch := topo.NewScratch(store)
	scratch.Reset(store.NumNodes(), 10)

	var e topo.Engine
	require.NoError(t, e.Run(store, oracle, scratch, 0, 3, topo.Forward, countingMerger{}))

	total := 0.0
	for _, c := range scratch.SourceBuckets[3] {
		total += c
	}
	require.Equal(t, 2.0, total, "expected exactly two paths through the diamond")
}

func TestEngine_BackwardPass_MirrorsForward(t *testing.T) {
	s := buildLine(t)
	oracle := ssdist.New(s)
	oracle.Reset(0, 3, 10)
	scratch := topo.NewScratch(s)
	scratch.Reset(s.NumNodes(), 10)

	var e topo.Engine
	require.NoError(t, e.Run(s, oracle, scratch, 0, 3, topo.Backward, countingMerger{}))

	total := 0.0
	for _, c := range scratch.SinkBuckets[0] {
		total += c
	}
	require.Equal(t, 1.0, total, "expected exactly one path reaching source in backward pass")
}

func TestEngine_CycleDoesNotInfiniteLoop(t *testing.T) {
	s := buildDiamondWithCycle(t)
	oracle := ssdist.New(s)
	oracle.Reset(0, 3, 10)
	scratch := topo.NewScratch(s)
	scratch.Reset(s.NumNodes(), 10)

	var e topo.Engine
	done := make(chan error, 1)
	go func() { done <- e.Run(s, oracle, scratch, 0, 3, topo.Forward, countingMerger{}) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-timeoutCh():
		t.Fatal("Run did not terminate on a cyclic graph")
	}
}
