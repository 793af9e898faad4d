// File: reverse_edges.go
// Role: reverse-edge construction. Two passes: count in-degree, then
// allocate exact capacity and fill in-edges.
package rrgraph

// BuildReverseEdges populates InEdges on every node of s by reversing
// OutEdges. If typeFilter is non-empty, only nodes whose Type is in the
// filter get their InEdges populated (used when only pins need reverse
// edges, e.g. for the virtual-source shim's backward walk).
func BuildReverseEdges(s *Store, typeFilter ...RRType) {
	wanted := func(RRType) bool { return true }
	if len(typeFilter) > 0 {
		set := make(map[RRType]bool, len(typeFilter))
		for _, t := range typeFilter {
			set[t] = true
		}
		wanted = func(t RRType) bool { return set[t] }
	}

	// Pass 1: in-degree per node.
	inDegree := make([]int, len(s.nodes))
	for _, nd := range s.nodes {
		for _, e := range nd.OutEdges {
			if wanted(s.nodes[e.To].Type) {
				inDegree[e.To]++
			}
		}
	}

	// Pass 2: allocate exact capacity, then fill.
	for i := range s.nodes {
		if inDegree[i] > 0 {
			s.nodes[i].InEdges = make([]Edge, 0, inDegree[i])
		} else {
			s.nodes[i].InEdges = nil
		}
	}
	for from, nd := range s.nodes {
		for _, e := range nd.OutEdges {
			if !wanted(s.nodes[e.To].Type) {
				continue
			}
			s.nodes[e.To].InEdges = append(s.nodes[e.To].InEdges, Edge{To: from, Switch: e.Switch})
		}
	}
}
