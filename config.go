package wotan

import (
	"github.com/RustamC/wotan/options"
	"github.com/RustamC/wotan/probanalysis"
	"github.com/RustamC/wotan/rrgraph"
)

// applyDemand applies the use_routing_node_demand / demand_multiplier
// pair: an optional flat override of every node's parsed demand, followed
// by the scalar multiplier every node's demand (parsed or overridden) is
// scaled by before analysis.
func applyDemand(store *rrgraph.Store, opt *options.UserOptions) {
	n := store.NumNodes()
	for id := 0; id < n; id++ {
		nd := store.Node(id)
		if opt.UseRoutingNodeDemand != nil {
			nd.Demand = *opt.UseRoutingNodeDemand
		}
		nd.Demand *= opt.DemandMultiplier
	}
}

// congestionConfig translates options.SelfCongestionMode into the
// probanalysis.Config a worker.Pool is built with.
func congestionConfig(opt *options.UserOptions) probanalysis.Config {
	switch opt.SelfCongestionMode {
	case options.CongestionRadius:
		return probanalysis.Config{Mode: probanalysis.ModeRadius, Radius: opt.SelfCongestionRadius}
	case options.CongestionPathDependence:
		return probanalysis.Config{Mode: probanalysis.ModePathDependence}
	default:
		return probanalysis.Config{Mode: probanalysis.ModeNone}
	}
}
