package rrio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/rrio"
)

const simpleLineGraph = `<?xml version="1.0"?>
<rr_graph>
  <switches>
    <switch id="0" type="buffer"/>
  </switches>
  <rr_nodes>
    <node id="0" type="SOURCE"><loc xlow="0" ylow="0" xhigh="0" yhigh="0" ptc="0"/></node>
    <node id="1" type="CHANX"><loc xlow="0" ylow="0" xhigh="0" yhigh="0" ptc="0"/></node>
    <node id="2" type="CHANX"><loc xlow="1" ylow="0" xhigh="1" yhigh="0" ptc="0"/></node>
    <node id="3" type="SINK"><loc xlow="1" ylow="0" xhigh="1" yhigh="0" ptc="0"/></node>
  </rr_nodes>
  <rr_edges>
    <edge src_node="0" sink_node="1" switch_id="0"/>
    <edge src_node="1" sink_node="2" switch_id="0"/>
    <edge src_node="2" sink_node="3" switch_id="0"/>
  </rr_edges>
</rr_graph>`

func TestLoadSimple_LineGraph(t *testing.T) {
	store, err := rrio.XMLLoader{}.LoadSimple(strings.NewReader(simpleLineGraph))
	require.NoError(t, err)
	require.Equal(t, 4, store.NumNodes())
	require.Equal(t, rrgraph.SOURCE, store.Node(0).Type)
	require.Equal(t, rrgraph.SINK, store.Node(3).Type)
	// Every downstream node is fed by the buffered switch: weight 1.
	for id := 1; id <= 3; id++ {
		require.Equal(t, 1, store.Node(id).Weight, "node %d weight", id)
	}
}

func TestLoadSimple_RejectsUnknownRRType(t *testing.T) {
	bad := strings.Replace(simpleLineGraph, `type="SOURCE"`, `type="BOGUS"`, 1)
	_, err := rrio.XMLLoader{}.LoadSimple(strings.NewReader(bad))
	require.Error(t, err, "expected error for unknown rr_type")
}
