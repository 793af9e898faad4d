package settings

import (
	"fmt"

	"github.com/RustamC/wotan/rrgraph"
)

// allocAndSetLengthProbabilities filters raw (indexed by length-1) down to
// realizable lengths and renormalizes the survivors to sum to 1. A length
// is realizable iff some driver-capable test tile has at least one
// receiver-capable tile at exactly that Manhattan distance — the same
// diamond walk over fill-type tiles job derivation uses, so every retained
// length has at least one such tile pair. Job derivation splits a length's
// probability across all test tiles, so a test tile with no receiver tile
// at a retained length still drops its share. A bounding-box span test is
// weaker: irregular or interior-restricted layouts admit spans no actual
// tile pair achieves, and a length admitted on span alone would be skipped
// at every test tile, leaking its whole probability mass out of the
// aggregate.
func (s *Settings) allocAndSetLengthProbabilities(store *rrgraph.Store, raw []float64) error {
	if len(raw) == 0 {
		s.LengthProbabilities = nil
		return nil
	}

	out := make([]float64, len(raw))
	var sum float64
	if s.hasCapablePin(store, rrgraph.PinDriver) && s.hasCapablePin(store, rrgraph.PinReceiver) {
		receivers := receiverTiles(store)
		for i, p := range raw {
			if p > 0 && s.tilePairAtDistance(receivers, i+1) {
				out[i] = p
				sum += p
			}
		}
	}
	if sum <= 0 {
		return ErrNoRealizableLength
	}
	for i := range out {
		out[i] /= sum
	}
	s.LengthProbabilities = out

	var check float64
	for _, p := range out {
		check += p
	}
	if abs(check-1) > tol {
		return fmt.Errorf("%w: renormalized sum=%f", ErrLengthProbsNotNormalized, check)
	}
	return nil
}

// hasCapablePin reports whether the fill block type has a non-global pin
// of the wanted direction carrying a nonzero usage probability. Every test
// tile shares the fill block type, so a single check covers them all.
func (s *Settings) hasCapablePin(store *rrgraph.Store, want rrgraph.PinType) bool {
	if len(store.BlockTypes()) == 0 {
		return false
	}
	bt := store.BlockType(store.FillType())
	for i, pin := range bt.Pins {
		if pin.Type == want && !pin.Global && i < len(s.PinProbabilities) && s.PinProbabilities[i] > 0 {
			return true
		}
	}
	return false
}

// receiverTiles collects every fill-type tile in the grid — the set job
// derivation draws sink tiles from. Unlike TestTileCoords this is never
// interior-restricted: a border fill tile can still receive.
func receiverTiles(store *rrgraph.Store) map[Coordinate]bool {
	w, h := store.GridSize()
	grid := store.Grid()
	tiles := make(map[Coordinate]bool)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if grid[x][y].TypeIndex == store.FillType() {
				tiles[Coordinate{X: x, Y: y}] = true
			}
		}
	}
	return tiles
}

// tilePairAtDistance reports whether any test tile has a receiver tile at
// exactly dist Manhattan distance, walking the diamond around each.
func (s *Settings) tilePairAtDistance(receivers map[Coordinate]bool, dist int) bool {
	for _, c := range s.TestTileCoords {
		for dx := 0; dx <= dist; dx++ {
			dy := dist - dx
			if receivers[Coordinate{X: c.X + dx, Y: c.Y + dy}] ||
				receivers[Coordinate{X: c.X + dx, Y: c.Y - dy}] ||
				receivers[Coordinate{X: c.X - dx, Y: c.Y + dy}] ||
				receivers[Coordinate{X: c.X - dx, Y: c.Y - dy}] {
				return true
			}
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
