package vsource_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/vsource"
)

// buildPinFixture is 0(OPIN)->1(CHANX)->2(IPIN), so synthesizing backward
// from the IPIN should collect node 1 at level 1 and node 0 at level 2.
func buildPinFixture(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.OPIN, HasSide: true, Side: rrgraph.Top, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}}},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 2, Switch: 0}}},
		{ID: 2, Type: rrgraph.IPIN, HasSide: true, Side: rrgraph.Top},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := [][]rrgraph.GridTile{{{}}}
	s, err := rrgraph.NewStore(nodes, switches, nil, grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

func TestSynthesize_CollectsPredecessors(t *testing.T) {
	store := buildPinFixture(t)
	vs, err := vsource.Synthesize(store, 2, 3)
	require.NoError(t, err)
	require.Len(t, vs.Predecessors, 2)
	require.Equal(t, vs.NodeID, store.Node(2).VirtualSourceNodeInd, "pin's VirtualSourceNodeInd")
	vsNode := store.Node(vs.NodeID)
	require.Equal(t, rrgraph.SOURCE, vsNode.Type)
	require.True(t, vsNode.IsVirtualSource, "synthetic node is not a virtual SOURCE: %+v", vsNode)
	require.Len(t, vsNode.OutEdges, 2)
}

func TestSynthesize_RejectsNonIPIN(t *testing.T) {
	store := buildPinFixture(t)
	_, err := vsource.Synthesize(store, 0, 3)
	require.ErrorIs(t, err, vsource.ErrNotIPIN)
}
