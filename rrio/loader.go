// Package rrio loads an RR-graph XML file into a *rrgraph.Store. Two modes
// are supported: RR_GRAPH_VPR (the full schema — channels, switches, block
// types, grid, nodes, edges) and RR_GRAPH_SIMPLE (nodes + switches + edges
// only).
package rrio

import (
	"io"

	"github.com/RustamC/wotan/rrgraph"
)

// Loader decodes an RR-graph XML document into a ready-to-use Store.
type Loader interface {
	LoadVPR(r io.Reader) (*rrgraph.Store, error)
	LoadSimple(r io.Reader) (*rrgraph.Store, error)
}

// XMLLoader is the concrete encoding/xml-backed Loader.
type XMLLoader struct{}

var _ Loader = XMLLoader{}

// LoadVPR decodes the full RR_GRAPH_VPR schema: channels, switches, block
// types, grid, nodes, and edges.
func (XMLLoader) LoadVPR(r io.Reader) (*rrgraph.Store, error) {
	return loadVPR(r)
}

// LoadSimple decodes the RR_GRAPH_SIMPLE schema: switches, nodes, and edges
// only. Grid/block-type consumers (package settings) receive an empty grid
// and no block types; analyses that need FillType/BlockTypes should use
// LoadVPR instead.
func (XMLLoader) LoadSimple(r io.Reader) (*rrgraph.Store, error) {
	return loadSimple(r)
}
