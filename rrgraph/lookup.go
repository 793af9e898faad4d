// File: lookup.go
// Role: the 5-D (type,x,y,side,ptc) -> node-id lookup index, built once in
// a single pass over the parsed nodes.
package rrgraph

import "fmt"

// lookupKey identifies one slot of the lookup index.
type lookupKey struct {
	Type RRType
	X, Y int
	Side Side
	Ptc  int
}

// coordFor returns the (x,y) pair used to key the lookup index for a node
// of the given type at bounding-box corner (x,y). CHANX nodes are indexed
// with x/y swapped, matching the original analyzer's convention (wires
// conceptually iterate "rows" first for horizontal channels).
func coordFor(t RRType, x, y int) (int, int) {
	if t == CHANX {
		return y, x
	}
	return x, y
}

// buildLookup fills Store.index in one pass: every node claims its slot(s)
// within its own bounding box. Pins claim only their own coordinate and
// side; SOURCE/SINK are replicated across every offset of a multi-tile
// block so any offset resolves to the root's node id.
func (s *Store) buildLookup() error {
	s.index = make(map[lookupKey]int, len(s.nodes))
	for i := range s.nodes {
		nd := &s.nodes[i]
		if nd.IsVirtualSource {
			continue
		}
		switch nd.Type {
		case IPIN, OPIN:
			if !nd.HasSide {
				return ErrPinWithoutSide
			}
			ix, iy := coordFor(nd.Type, nd.Xlow, nd.Ylow)
			s.setSlot(lookupKey{nd.Type, ix, iy, nd.Side, nd.Ptc}, i)
		case CHANX, CHANY:
			// A parsed channel width of 0 (simple-mode documents carry no
			// <channels> section) disables the range check.
			if s.chanWidth.Max > 0 && nd.Ptc >= s.chanWidth.Max {
				return fmt.Errorf("%w: node %d ptc %d, channel width %d", ErrPtcOutOfRange, i, nd.Ptc, s.chanWidth.Max)
			}
			for x := nd.Xlow; x <= nd.Xhigh; x++ {
				for y := nd.Ylow; y <= nd.Yhigh; y++ {
					ix, iy := coordFor(nd.Type, x, y)
					s.setSlot(lookupKey{nd.Type, ix, iy, sideNone, nd.Ptc}, i)
				}
			}
		case SOURCE, SINK:
			for x := nd.Xlow; x <= nd.Xhigh; x++ {
				for y := nd.Ylow; y <= nd.Yhigh; y++ {
					s.setSlot(lookupKey{nd.Type, x, y, sideNone, nd.Ptc}, i)
				}
			}
		}
	}
	return nil
}

// setSlot writes id into the lookup index, first-writer-wins: a slot that
// is already claimed is left untouched (this only happens for legitimate
// SOURCE/SINK replication across a multi-tile block's offsets).
func (s *Store) setSlot(k lookupKey, id int) {
	if _, exists := s.index[k]; !exists {
		s.index[k] = id
	}
}

// lookup resolves one (type,x,y,side,ptc) coordinate, returning OPEN if the
// slot is unclaimed.
func (s *Store) lookup(t RRType, x, y int, side Side, ptc int) int {
	ix, iy := coordFor(t, x, y)
	if t != IPIN && t != OPIN {
		side = sideNone
	}
	if id, ok := s.index[lookupKey{t, ix, iy, side, ptc}]; ok {
		return id
	}
	return OPEN
}
