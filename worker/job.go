// Package worker schedules (source,sink) connection jobs across a
// fixed-size pool of goroutines, running the distance-oracle and
// topological passes on each and aggregating per-job reliability
// contributions into a single estimate.
package worker

import "github.com/RustamC/wotan/settings"

// Job is one (source,sink) connection to analyze: a resolved source and
// sink node id, the connection's Manhattan length and derived max path
// weight K, and the weight its reliability contribution carries in the
// aggregate (for grid-backed stores, the connection length's probability
// split evenly across test tiles and then across the sink tiles each test
// tile reaches at that length; otherwise 1 over the job count), so the
// aggregate is a weighted average rather than a sum over an arbitrary job
// count.
type Job struct {
	Source, Sink int
	ConnLength   int
	K            int
	Weight       float64

	// TestTile/SinkTile are the job's endpoint tiles: probanalysis's
	// ModeRadius keys its cross-job history on them, and package wotan's
	// virtual-source diagnostic resolves the sink IPIN from SinkTile.
	TestTile, SinkTile settings.Coordinate
}
