package rrgraph

import "sync"

// AttachVirtualSource appends a synthetic SOURCE node with the given
// out-edges (switch ids on these edges are unused) and records its id on
// the IPIN it was synthesized for. This is the one
// explicitly-modelled exception to "immutable after load": the Graph Store
// otherwise never grows after NewStore returns.
//
// Not safe to call concurrently with itself or with any in-flight job;
// package wotan's Run creates virtual sources (through package vsource)
// before it builds the worker pool.
func (s *Store) AttachVirtualSource(pinID int, predecessors []int) int {
	vsID := len(s.nodes)
	out := make([]Edge, len(predecessors))
	for i, p := range predecessors {
		out[i] = Edge{To: p, Switch: OPEN}
	}
	s.nodes = append(s.nodes, Node{
		ID:                   vsID,
		Type:                 SOURCE,
		Xlow:                 s.nodes[pinID].Xlow,
		Ylow:                 s.nodes[pinID].Ylow,
		Xhigh:                s.nodes[pinID].Xlow,
		Yhigh:                s.nodes[pinID].Ylow,
		Weight:               0,
		OutEdges:             out,
		IsVirtualSource:      true,
		VirtualSourceNodeInd: OPEN,
	})
	s.locks = append(s.locks, sync.Mutex{})
	s.nodes[pinID].VirtualSourceNodeInd = vsID
	return vsID
}
