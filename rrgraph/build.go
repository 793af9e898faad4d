package rrgraph

import "sync"

// sideNone is the lookup-index slot used by nodes without a meaningful side
// (everything except IPIN/OPIN). It occupies the extra slot reserved by the
// [NumSides+1] dimension of Store.index.
const sideNone = Side(NumSides)

// newStore runs the load-time pipeline:
//  1. reverse-edge construction (pass to rrgraph's own BuildReverseEdges)
//  2. lookup-index construction
//  3. per-node weight derivation from incoming switches
//  4. fill/perimeter type derivation
// then validates every invariant before returning.
func newStore(nodes []Node, switches []Switch, blockTypes []BlockType, grid [][]GridTile, cw ChanWidth) (*Store, error) {
	s := &Store{
		nodes:      nodes,
		switches:   switches,
		blockTypes: blockTypes,
		grid:       grid,
		chanWidth:  cw,
		locks:      make([]sync.Mutex, len(nodes)),
	}
	for i := range s.nodes {
		if s.nodes[i].ID != i {
			return nil, ErrDuplicateNode
		}
		s.nodes[i].VirtualSourceNodeInd = OPEN
	}

	if err := s.checkEdgeTargets(); err != nil {
		return nil, err
	}
	BuildReverseEdges(s)
	if err := s.buildLookup(); err != nil {
		return nil, err
	}
	s.computeWeights()
	s.deriveFillAndPerimeter()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkEdgeTargets rejects out-edges referencing a node or switch id out of
// range, before anything downstream dereferences them.
func (s *Store) checkEdgeTargets() error {
	n := len(s.nodes)
	for _, nd := range s.nodes {
		for _, e := range nd.OutEdges {
			if e.To < 0 || e.To >= n {
				return ErrUnknownNode
			}
			if e.Switch < 0 || e.Switch >= len(s.switches) {
				return ErrUnknownNode
			}
		}
	}
	return nil
}
