package rrio

import (
	"fmt"

	"github.com/RustamC/wotan/rrgraph"
)

// parseRRType maps the XML "type" attribute to rrgraph.RRType, matching
// process_nodes's node_type string switch.
func parseRRType(s string) (rrgraph.RRType, error) {
	switch s {
	case "SOURCE":
		return rrgraph.SOURCE, nil
	case "SINK":
		return rrgraph.SINK, nil
	case "IPIN":
		return rrgraph.IPIN, nil
	case "OPIN":
		return rrgraph.OPIN, nil
	case "CHANX":
		return rrgraph.CHANX, nil
	case "CHANY":
		return rrgraph.CHANY, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRRType, s)
	}
}

func isPinType(t rrgraph.RRType) bool { return t == rrgraph.IPIN || t == rrgraph.OPIN }

// parseSide maps the XML "side" attribute, matching process_nodes's
// correct_side string switch.
func parseSide(s string) (rrgraph.Side, error) {
	switch s {
	case "TOP":
		return rrgraph.Top, nil
	case "RIGHT":
		return rrgraph.Right, nil
	case "BOTTOM":
		return rrgraph.Bottom, nil
	case "LEFT":
		return rrgraph.Left, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

// parseDirection maps the XML "direction" attribute, matching
// process_nodes's correct_direction string switch. Nodes without a
// direction attribute (everything but CHANX/CHANY) get NoDirection.
func parseDirection(s string) (rrgraph.Direction, error) {
	switch s {
	case "":
		return rrgraph.NoDirection, nil
	case "INC_DIR":
		return rrgraph.Inc, nil
	case "DEC_DIR":
		return rrgraph.Dec, nil
	case "BI_DIR":
		return rrgraph.Bi, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// toNode converts one decoded xmlNode into a rrgraph.Node. Edges are filled
// in separately once every node id is known (see convertEdges).
func toNode(x xmlNode) (rrgraph.Node, error) {
	t, err := parseRRType(x.Type)
	if err != nil {
		return rrgraph.Node{}, err
	}
	dir, err := parseDirection(x.Direction)
	if err != nil {
		return rrgraph.Node{}, err
	}
	n := rrgraph.Node{
		ID:                   x.ID,
		Type:                 t,
		Xlow:                 x.Loc.Xlow,
		Ylow:                 x.Loc.Ylow,
		Xhigh:                x.Loc.Xhigh,
		Yhigh:                x.Loc.Yhigh,
		Ptc:                  x.Loc.Ptc,
		Direction:            dir,
		VirtualSourceNodeInd: rrgraph.OPEN,
	}
	if x.Timing != nil {
		n.R, n.C = x.Timing.R, x.Timing.C
	}
	if isPinType(t) {
		if x.Loc.Side == "" {
			return rrgraph.Node{}, fmt.Errorf("%w: node %d", ErrMissingSide, x.ID)
		}
		side, err := parseSide(x.Loc.Side)
		if err != nil {
			return rrgraph.Node{}, err
		}
		n.Side, n.HasSide = side, true
	}
	return n, nil
}

// convertEdges appends each parsed xmlEdge onto its source node's OutEdges.
// nodes is indexed by node id (callers sort/size it first).
func convertEdges(nodes []rrgraph.Node, edges []xmlEdge) error {
	n := len(nodes)
	for _, e := range edges {
		if e.SrcNode < 0 || e.SrcNode >= n {
			return fmt.Errorf("edge references out-of-range src_node %d", e.SrcNode)
		}
		nodes[e.SrcNode].OutEdges = append(nodes[e.SrcNode].OutEdges, rrgraph.Edge{To: e.SinkNode, Switch: e.SwitchID})
	}
	return nil
}

// toSwitch converts one decoded xmlSwitch. "type" values tcircuit/mux/
// pass_gate/short are pass-type (unbuffered); buffer/tristate are buffered
// (matches process_switches's switch_type_str classification).
func toSwitch(x xmlSwitch) rrgraph.Switch {
	sw := rrgraph.Switch{Name: fmt.Sprintf("sw%d", x.ID), Buffered: isBufferedType(x.Type)}
	if x.Timing != nil {
		sw.R, sw.Cin, sw.Cout, sw.Tdel = x.Timing.R, x.Timing.Cin, x.Timing.Cout, x.Timing.Tdel
	}
	return sw
}

func isBufferedType(t string) bool {
	switch t {
	case "buffer", "tristate":
		return true
	default:
		return false
	}
}

// toBlockType converts one decoded xmlBlockType, including its pin-class
// catalog (driver/receiver + global flag per pin), matching init_block_pins.
func toBlockType(x xmlBlockType) rrgraph.BlockType {
	bt := rrgraph.BlockType{Name: x.Name, Width: x.Width, Height: x.Height, Class: rrgraph.BlockCLB}
	for _, pc := range x.PinClass {
		ptype := rrgraph.PinOpen
		switch pc.Type {
		case "DRIVER":
			ptype = rrgraph.PinDriver
		case "RECEIVER":
			ptype = rrgraph.PinReceiver
		}
		for _, p := range pc.Pin {
			bt.Pins = append(bt.Pins, rrgraph.PinClass{Type: ptype, Global: p.IsGlobal})
			_ = p.Ptc // ptc ordering of pins within a block type is not consulted by the core
		}
	}
	return bt
}

// toGrid lays out decoded xmlGridLoc entries into the [x][y] jagged grid
// rrgraph.Store expects, sized from the maximum x/y seen.
func toGrid(locs []xmlGridLoc, numBlockTypes int) ([][]rrgraph.GridTile, error) {
	maxX, maxY := 0, 0
	for _, g := range locs {
		if g.X > maxX {
			maxX = g.X
		}
		if g.Y > maxY {
			maxY = g.Y
		}
	}
	grid := make([][]rrgraph.GridTile, maxX+1)
	for x := range grid {
		grid[x] = make([]rrgraph.GridTile, maxY+1)
	}
	for _, g := range locs {
		if numBlockTypes > 0 && (g.BlockTypeID < 0 || g.BlockTypeID >= numBlockTypes) {
			return nil, ErrUnknownBlockType
		}
		grid[g.X][g.Y] = rrgraph.GridTile{
			TypeIndex:    g.BlockTypeID,
			WidthOffset:  g.WidthOffset,
			HeightOffset: g.HeightOffset,
		}
	}
	return grid, nil
}

// toChanWidth converts the decoded <channels> block.
func toChanWidth(c xmlChannels) rrgraph.ChanWidth {
	cw := rrgraph.ChanWidth{
		Max:  c.Channel.ChanWidthMax,
		XMin: c.Channel.XMin,
		YMin: c.Channel.YMin,
		XMax: c.Channel.XMax,
		YMax: c.Channel.YMax,
	}
	for _, x := range c.XList {
		cw.XList = append(cw.XList, int(x.Info))
	}
	for _, y := range c.YList {
		cw.YList = append(cw.YList, int(y.Info))
	}
	return cw
}
