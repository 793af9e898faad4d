package rrio

// The xml* types mirror the RR-graph schema's attribute names, one struct
// per element. Unrecognized attributes are ignored by encoding/xml
// automatically.

type xmlRRGraph struct {
	Channels    xmlChannels    `xml:"channels"`
	Switches    xmlSwitches    `xml:"switches"`
	BlockTypes  xmlBlockTypes  `xml:"block_types"`
	Grid        xmlGrid        `xml:"grid"`
	Nodes       xmlRRNodes     `xml:"rr_nodes"`
	Edges       xmlRREdges     `xml:"rr_edges"`
}

type xmlChannels struct {
	Channel xmlChannel `xml:"channel"`
	XList   []xmlList  `xml:"x_list"`
	YList   []xmlList  `xml:"y_list"`
}

type xmlChannel struct {
	ChanWidthMax int `xml:"chan_width_max,attr"`
	XMin         int `xml:"x_min,attr"`
	YMin         int `xml:"y_min,attr"`
	XMax         int `xml:"x_max,attr"`
	YMax         int `xml:"y_max,attr"`
}

type xmlList struct {
	Index int     `xml:"index,attr"`
	Info  float64 `xml:"info,attr"`
}

type xmlSwitches struct {
	Switch []xmlSwitch `xml:"switch"`
}

type xmlSwitch struct {
	ID     int           `xml:"id,attr"`
	Type   string        `xml:"type,attr"`
	Timing *xmlTiming    `xml:"timing"`
	Sizing *xmlSizing    `xml:"sizing"`
}

type xmlTiming struct {
	R    float64 `xml:"R,attr"`
	C    float64 `xml:"C,attr"`
	Cin  float64 `xml:"Cin,attr"`
	Cout float64 `xml:"Cout,attr"`
	Tdel float64 `xml:"Tdel,attr"`
}

type xmlSizing struct {
	MuxTransSize float64 `xml:"mux_trans_size,attr"`
	BufSize      float64 `xml:"buf_size,attr"`
}

type xmlBlockTypes struct {
	BlockType []xmlBlockType `xml:"block_type"`
}

type xmlBlockType struct {
	ID        int            `xml:"id,attr"`
	Name      string         `xml:"name,attr"`
	Width     int            `xml:"width,attr"`
	Height    int            `xml:"height,attr"`
	PinClass  []xmlPinClass  `xml:"pin_class"`
}

type xmlPinClass struct {
	Type string    `xml:"type,attr"`
	Pin  []xmlPin  `xml:"pin"`
}

type xmlPin struct {
	Ptc      int  `xml:"ptc,attr"`
	IsGlobal bool `xml:"is_global,attr"`
}

type xmlGrid struct {
	GridLoc []xmlGridLoc `xml:"grid_loc"`
}

type xmlGridLoc struct {
	X            int `xml:"x,attr"`
	Y            int `xml:"y,attr"`
	BlockTypeID  int `xml:"block_type_id,attr"`
	WidthOffset  int `xml:"width_offset,attr"`
	HeightOffset int `xml:"height_offset,attr"`
}

type xmlRRNodes struct {
	Node []xmlNode `xml:"node"`
}

type xmlNode struct {
	ID        int        `xml:"id,attr"`
	Type      string     `xml:"type,attr"`
	Direction string     `xml:"direction,attr"`
	Loc       xmlLoc     `xml:"loc"`
	Timing    *xmlTiming `xml:"timing"`
}

type xmlLoc struct {
	Xlow  int    `xml:"xlow,attr"`
	Ylow  int    `xml:"ylow,attr"`
	Xhigh int    `xml:"xhigh,attr"`
	Yhigh int    `xml:"yhigh,attr"`
	Side  string `xml:"side,attr"`
	Ptc   int    `xml:"ptc,attr"`
}

type xmlRREdges struct {
	Edge []xmlEdge `xml:"edge"`
}

type xmlEdge struct {
	SrcNode  int `xml:"src_node,attr"`
	SinkNode int `xml:"sink_node,attr"`
	SwitchID int `xml:"switch_id,attr"`
}
