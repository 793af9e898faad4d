package rrio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/RustamC/wotan/rrgraph"
)

// loadVPR decodes the full RR_GRAPH_VPR schema and builds a Store:
// switches, channels, block types, grid, nodes, then edges, in that order.
func loadVPR(r io.Reader) (*rrgraph.Store, error) {
	var doc xmlRRGraph
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("rrio: decoding RR_GRAPH_VPR document: %w", err)
	}

	nodes, err := buildNodeSlice(doc.Nodes.Node)
	if err != nil {
		return nil, err
	}
	if err := convertEdges(nodes, doc.Edges.Edge); err != nil {
		return nil, err
	}

	switches := make([]rrgraph.Switch, maxSwitchID(doc.Switches.Switch)+1)
	for _, sw := range doc.Switches.Switch {
		switches[sw.ID] = toSwitch(sw)
	}

	blockTypes := make([]rrgraph.BlockType, maxBlockTypeID(doc.BlockTypes.BlockType)+1)
	for _, bt := range doc.BlockTypes.BlockType {
		blockTypes[bt.ID] = toBlockType(bt)
	}

	grid, err := toGrid(doc.Grid.GridLoc, len(blockTypes))
	if err != nil {
		return nil, err
	}
	cw := toChanWidth(doc.Channels)

	return rrgraph.NewStore(nodes, switches, blockTypes, grid, cw)
}

// buildNodeSlice places decoded nodes into a slice indexed by id (rrgraph
// requires nodes[i].ID == i), sized from the maximum id seen. A repeated id
// is rejected with rrgraph.ErrDuplicateNode. An id left unfilled stays a
// placeholder node with only its ID set (type SOURCE, the zero value, at
// (0,0)); neither this function nor rrgraph.NewStore rejects it.
func buildNodeSlice(xs []xmlNode) ([]rrgraph.Node, error) {
	maxID := -1
	for _, x := range xs {
		if x.ID > maxID {
			maxID = x.ID
		}
	}
	nodes := make([]rrgraph.Node, maxID+1)
	for i := range nodes {
		nodes[i] = rrgraph.Node{ID: i, VirtualSourceNodeInd: rrgraph.OPEN}
	}
	seen := make([]bool, maxID+1)
	for _, x := range xs {
		if seen[x.ID] {
			return nil, fmt.Errorf("%w: node %d", rrgraph.ErrDuplicateNode, x.ID)
		}
		seen[x.ID] = true
		n, err := toNode(x)
		if err != nil {
			return nil, err
		}
		nodes[x.ID] = n
	}
	return nodes, nil
}

func maxSwitchID(xs []xmlSwitch) int {
	max := -1
	for _, x := range xs {
		if x.ID > max {
			max = x.ID
		}
	}
	return max
}

func maxBlockTypeID(xs []xmlBlockType) int {
	max := -1
	for _, x := range xs {
		if x.ID > max {
			max = x.ID
		}
	}
	return max
}
