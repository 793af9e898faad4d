package rrgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/rrgraph"
)

// buildLine builds a line graph: nodes 0->1->2->3, all
// weight 1, demand 0. Node 0 is a SOURCE, node 3 a SINK, the rest CHANX.
func buildLine(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, Ptc: 0, OutEdges: []rrgraph.Edge{{To: 2, Switch: 0}}},
		{ID: 2, Type: rrgraph.CHANX, Xlow: 1, Ylow: 0, Xhigh: 1, Yhigh: 0, Ptc: 0, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}},
		{ID: 3, Type: rrgraph.SINK, Xlow: 1, Ylow: 0, Xhigh: 1, Yhigh: 0},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := [][]rrgraph.GridTile{{{}, {}}, {{}, {}}}
	s, err := rrgraph.NewStore(nodes, switches, nil, grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

func TestStore_Weights(t *testing.T) {
	s := buildLine(t)
	// SOURCE has no in-switches: weight 0.
	require.Equal(t, 0, s.Node(0).Weight, "source weight")
	// Every downstream node is fed by the buffered switch: weight 1.
	for id := 1; id <= 3; id++ {
		require.Equal(t, 1, s.Node(id).Weight, "node %d weight", id)
	}
}

func TestStore_Lookup(t *testing.T) {
	s := buildLine(t)
	require.Equal(t, 1, s.NodeIndex(rrgraph.CHANX, 0, 0, 0, 0), "CHANX lookup(x=0,y=0)")
	require.Equal(t, 2, s.NodeIndex(rrgraph.CHANX, 1, 0, 0, 0), "CHANX lookup(x=1,y=0)")
	require.Equal(t, 0, s.NodeIndex(rrgraph.SOURCE, 0, 0, 0, 0), "SOURCE lookup")
	require.Equal(t, rrgraph.OPEN, s.NodeIndex(rrgraph.SOURCE, 5, 5, 0, 0), "out-of-range lookup")
}

func TestStore_ReverseEdgesSymmetric(t *testing.T) {
	s := buildLine(t)
	require.Len(t, s.Node(1).InEdges, 1)
	require.Equal(t, 0, s.Node(1).InEdges[0].To)
	require.Len(t, s.Node(3).InEdges, 1)
	require.Equal(t, 2, s.Node(3).InEdges[0].To)
}

func TestStore_DuplicateNodeID(t *testing.T) {
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE},
		{ID: 0, Type: rrgraph.SINK},
	}
	_, err := rrgraph.NewStore(nodes, nil, nil, nil, rrgraph.ChanWidth{})
	require.Error(t, err, "expected duplicate-id error")
}

func TestStore_UnknownEdgeTarget(t *testing.T) {
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 9, Switch: 0}}},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	_, err := rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
	require.Error(t, err, "expected unknown-node error")
}
