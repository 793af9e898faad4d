package settings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/settings"
)

// fillBlockTypes is a two-entry catalog: index 0 stands in for the
// perimeter IO block, index 1 is the logic block every fixture grid fills
// with, carrying one driver and one receiver pin class.
func fillBlockTypes() []rrgraph.BlockType {
	return []rrgraph.BlockType{
		{Name: "io", Class: rrgraph.BlockIO},
		{Name: "clb", Class: rrgraph.BlockCLB, Width: 1, Height: 1, Pins: []rrgraph.PinClass{
			{Type: rrgraph.PinDriver},
			{Type: rrgraph.PinReceiver},
		}},
	}
}

func smallStore(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{{ID: 0, Type: rrgraph.SOURCE}}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := make([][]rrgraph.GridTile, 4)
	for x := range grid {
		grid[x] = make([]rrgraph.GridTile, 4)
		for y := range grid[x] {
			grid[x][y] = rrgraph.GridTile{TypeIndex: 1}
		}
	}
	s, err := rrgraph.NewStore(nodes, switches, fillBlockTypes(), grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

// diagonalStore fills only the main diagonal of a 3x3 grid: tile pairs sit
// at Manhattan distances 2 and 4 exclusively, though the bounding-box span
// would admit 1 through 4.
func diagonalStore(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{{ID: 0, Type: rrgraph.SOURCE}}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	grid := make([][]rrgraph.GridTile, 3)
	for x := range grid {
		grid[x] = make([]rrgraph.GridTile, 3)
	}
	for i := 0; i < 3; i++ {
		grid[i][i] = rrgraph.GridTile{TypeIndex: 1}
	}
	s, err := rrgraph.NewStore(nodes, switches, fillBlockTypes(), grid, rrgraph.ChanWidth{Max: 1})
	require.NoError(t, err)
	return s
}

func TestSettings_LengthProbabilities_Renormalize(t *testing.T) {
	store := smallStore(t)
	raw := []float64{0.5, 0.0, 0.5, 0, 0, 0, 0, 0, 0, 0} // lengths 1 and 3
	st, err := settings.New(store, settings.WithLengthProbabilities(raw))
	require.NoError(t, err)
	var sum float64
	for _, p := range st.LengthProbabilities {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-6, "retained probabilities sum")
}

// TestSettings_LengthProbabilities_DropsUnachievableLengths: a length is
// realizable only if an actual tile pair achieves it, not merely because
// it fits the bounding-box span. On the diagonal layout length 1 has no
// pair and must be dropped, leaving all the probability mass on length 2.
func TestSettings_LengthProbabilities_DropsUnachievableLengths(t *testing.T) {
	store := diagonalStore(t)
	raw := []float64{0.5, 0.5}
	st, err := settings.New(store, settings.WithLengthProbabilities(raw))
	require.NoError(t, err)
	require.Equal(t, 0.0, st.LengthProbabilities[0], "length 1 has no achievable tile pair")
	require.InDelta(t, 1.0, st.LengthProbabilities[1], 1e-6, "length 2 absorbs the full mass")
}

func TestSettings_LengthProbabilities_NoRealizableLength(t *testing.T) {
	store := diagonalStore(t)
	raw := []float64{0.4, 0, 0.6} // lengths 1 and 3: neither achievable
	_, err := settings.New(store, settings.WithLengthProbabilities(raw))
	require.ErrorIs(t, err, settings.ErrNoRealizableLength)
}

func TestSettings_LengthProbabilities_RejectsUnnormalizedInput(t *testing.T) {
	store := smallStore(t)
	raw := []float64{0.5, 0.5, 0.5}
	_, err := settings.New(store, settings.WithLengthProbabilities(raw))
	require.Error(t, err, "expected ErrLengthProbsNotNormalized")
}

func TestSettings_MaxPathWeight(t *testing.T) {
	store := smallStore(t)
	st, err := settings.New(store, settings.WithSlack(3))
	require.NoError(t, err)
	require.Equal(t, 8, st.MaxPathWeight(5))
}
