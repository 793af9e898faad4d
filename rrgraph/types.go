// Package rrgraph owns the routing-resource (RR) graph data model: nodes,
// switches, the physical grid, and the coordinate lookup index. A Store is
// built once by a loader (see package rrio) and is read-only for every node,
// switch, block-type, and grid field thereafter — the only mutations the
// rest of this module performs on a live Store are node demand (rescaled
// between analysis runs), the radius-mode History field (written by package
// probanalysis under a per-node mutex, see lock.go), and the append-only
// virtual-source shim (virtual_source.go).
package rrgraph

import "sync"

// RRType classifies a routing-resource node. Order matches the original
// analyzer's enum so numeric comparisons and serialization stay stable.
type RRType int

const (
	SOURCE RRType = iota
	SINK
	IPIN
	OPIN
	CHANX
	CHANY
	numRRTypes
)

func (t RRType) String() string {
	switch t {
	case SOURCE:
		return "SOURCE"
	case SINK:
		return "SINK"
	case IPIN:
		return "IPIN"
	case OPIN:
		return "OPIN"
	case CHANX:
		return "CHANX"
	case CHANY:
		return "CHANY"
	default:
		return "UNKNOWN"
	}
}

// Direction describes which way signals travel on a wire node.
type Direction int

const (
	Inc Direction = iota
	Dec
	Bi
	NoDirection
)

// Side identifies which edge of a tile a pin sits on.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
	NumSides
)

// OPEN is the sentinel node-id meaning "no node" (e.g. an empty lookup slot).
const OPEN = -1

// PinType classifies a physical block's pin.
type PinType int

const (
	PinOpen PinType = iota - 1
	PinDriver
	PinReceiver
)

// BlockClass classifies a physical block type, mirroring the original
// analyzer's e_block_type enum. It is carried but not read:
// FillType/PerimeterType are derived from grid TypeIndex frequencies.
type BlockClass int

const (
	BlockEmpty BlockClass = iota
	BlockIO
	BlockCLB
	BlockMacro
)

// PinClass describes one pin-class slot of a physical block type: its
// directionality and whether it is a "global" pin (clocks, resets — these
// never get a driver/receiver probability assigned by Analysis Settings).
type PinClass struct {
	Type   PinType
	Global bool
}

// BlockType is a physical logic-block or IO-block descriptor.
type BlockType struct {
	Name     string
	Width    int
	Height   int
	Class    BlockClass
	Pins     []PinClass
}

// Switch is an RR-graph switch type. Only Buffered is consulted by the core
// (to derive node weight from incoming switches); the rest is parsed and
// carried but never read (no timing modelling).
type Switch struct {
	Name     string
	Buffered bool
	R        float64
	Cin      float64
	Cout     float64
	Tdel     float64
}

// GridTile is one cell of the physical grid.
type GridTile struct {
	TypeIndex    int
	WidthOffset  int
	HeightOffset int
	NumSources   int
	NumReceivers int
}

// Edge is one directed connection "out of" a node, via a switch.
type Edge struct {
	To     int
	Switch int
}

// HistoryClass distinguishes which endpoint of a connection contributed a
// path-history observation: the offset to the job's source tile or to its
// sink tile.
type HistoryClass int

const (
	HistorySource HistoryClass = iota
	HistorySink
	NumHistoryClasses
)

// PathHistory is the radius-mode self-congestion ledger: polar-indexed
// [radius][arc][class] contribution, lazily allocated on first write.
// Center is the node's (Xlow,Ylow).
type PathHistory struct {
	Radius int
	// Arcs[r] has length 4*r (or 1 for r==0); each point holds one float
	// per HistoryClass.
	Arcs [][][NumHistoryClasses]float64
}

// Node is one routing-resource node.
//
// Fields other than Demand, VirtualSourceNodeInd and History are immutable
// after load. History, below, persists across jobs, is never cleared, and is
// read and written under the Store's per-node mutex (see lock.go). Per-job
// traversal state lives in ssdist.Oracle and topo.Scratch, not on Node.
type Node struct {
	ID   int
	Type RRType

	Xlow, Ylow   int
	Xhigh, Yhigh int
	Xs, Ys       int // coordinate of the SOURCE/SINK this pin feeds, if applicable

	Side      Side
	HasSide   bool
	Direction Direction
	Ptc       int

	R, C float64

	OutEdges []Edge
	InEdges  []Edge // populated by BuildReverseEdges

	Weight int     // 1 if fed by a buffered switch, else 0 (see weight.go)
	Demand float64 // fractional demand used by probability analysis

	IsVirtualSource      bool
	VirtualSourceNodeInd int // OPEN unless this IPIN has a synthesized virtual source

	// --- cross-job state, see probanalysis ---
	History *PathHistory // radius-mode self-congestion, persists across jobs
}

// Store is the immutable-after-load owner of the RR graph.
type Store struct {
	nodes      []Node
	switches   []Switch
	blockTypes []BlockType
	grid       [][]GridTile // grid[x][y]
	chanWidth  ChanWidth

	// index is the 5-D lookup (type,x,y,side,ptc) -> node id. CHANX/CHANY are
	// dense per (x,y) since every track at a coordinate is enumerated; pins
	// are sparse (most (x,y,side,ptc) combinations are empty), so the
	// concrete representation is a sparse map keyed by lookupKey rather than
	// a literal 5-level jagged slice.
	index map[lookupKey]int

	locks []sync.Mutex // one per node id, sized at load

	fillType      int
	perimeterType int
}

// ChanWidth carries the per-row/column channel-width limits parsed from the
// <channels> section. Only Max is consulted by the core (ptc range checks);
// the rest is retained for completeness of the data model.
type ChanWidth struct {
	Max   int
	XMax  int
	YMax  int
	XMin  int
	YMin  int
	XList []int
	YList []int
}
