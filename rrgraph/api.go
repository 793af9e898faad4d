// File: api.go
// Role: thin public facade — constructors and read-only getters. No
// algorithmic logic lives here; that's lookup.go, reverse_edges.go,
// weight.go and validate.go.

package rrgraph

// NewStore builds a Store from fully-populated nodes/switches/block-types/
// grid. It is the single entry point a loader (package rrio) uses once it
// has decoded every element; NewStore then runs the three load-time passes:
// reverse edges, lookup index, node weights — and derives
// FillType/PerimeterType. Returns the first failing construction step's
// error, or else Validate's joined report.
func NewStore(nodes []Node, switches []Switch, blockTypes []BlockType, grid [][]GridTile, cw ChanWidth) (*Store, error) {
	return newStore(nodes, switches, blockTypes, grid, cw)
}

// NumNodes returns the total number of nodes in the graph.
func (s *Store) NumNodes() int { return len(s.nodes) }

// Node returns a pointer to the node with the given id. Panics if id is out
// of range: callers within this module always hold a valid id because
// NewStore validated the graph at load, so an out-of-range id is an internal
// consistency violation, not a recoverable error.
func (s *Store) Node(id int) *Node { return &s.nodes[id] }

// NodeIndex resolves a single (type,x,y,side,ptc) coordinate to a node id,
// or OPEN if no such node is indexed there.
func (s *Store) NodeIndex(rrType RRType, x, y int, side Side, ptc int) int {
	return s.lookup(rrType, x, y, side, ptc)
}

// NodeIndices resolves every side of a (type,x,y,ptc) coordinate; for
// non-pin types the single result, if any, is returned at index 0.
func (s *Store) NodeIndices(rrType RRType, x, y, ptc int) []int {
	if rrType != IPIN && rrType != OPIN {
		if id := s.lookup(rrType, x, y, sideNone, ptc); id != OPEN {
			return []int{id}
		}
		return nil
	}
	out := make([]int, 0, NumSides)
	for side := Side(0); side < NumSides; side++ {
		if id := s.lookup(rrType, x, y, side, ptc); id != OPEN {
			out = append(out, id)
		}
	}
	return out
}

// GridSize returns the grid's (width, height).
func (s *Store) GridSize() (int, int) {
	if len(s.grid) == 0 {
		return 0, 0
	}
	return len(s.grid), len(s.grid[0])
}

// BlockType returns the block-type descriptor at index.
func (s *Store) BlockType(index int) *BlockType { return &s.blockTypes[index] }

// FillType returns the index of the most frequent interior block type,
// assumed to be the logic block.
func (s *Store) FillType() int { return s.fillType }

// PerimeterType returns the index of the most frequent border block type.
func (s *Store) PerimeterType() int { return s.perimeterType }

// MaxChanWidth returns the maximum channel width across the whole grid.
func (s *Store) MaxChanWidth() int { return s.chanWidth.Max }

// Grid exposes the raw grid for settings/test-tile derivation.
func (s *Store) Grid() [][]GridTile { return s.grid }

// BlockTypes exposes the full catalog for settings' pin-probability pass.
func (s *Store) BlockTypes() []BlockType { return s.blockTypes }

// ChanWidthLimits exposes the parsed channel width struct.
func (s *Store) ChanWidthLimits() ChanWidth { return s.chanWidth }
