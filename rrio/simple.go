package rrio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/RustamC/wotan/rrgraph"
)

// xmlSimpleGraph is the RR_GRAPH_SIMPLE schema: nodes + switches + edges,
// no <grid>/<block_types>/<channels>.
type xmlSimpleGraph struct {
	Switches xmlSwitches `xml:"switches"`
	Nodes    xmlRRNodes  `xml:"rr_nodes"`
	Edges    xmlRREdges  `xml:"rr_edges"`
}

// loadSimple decodes the RR_GRAPH_SIMPLE schema. The resulting Store has an
// empty grid and no block types; settings.New still works against it (it
// degrades to zero test tiles / zero pin probabilities, which is exactly
// what "no grid" should mean for a consumer that needs one).
func loadSimple(r io.Reader) (*rrgraph.Store, error) {
	var doc xmlSimpleGraph
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("rrio: decoding RR_GRAPH_SIMPLE document: %w", err)
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

	return rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
}
