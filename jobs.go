package wotan

import (
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/settings"
	"github.com/RustamC/wotan/wlog"
	"github.com/RustamC/wotan/worker"
)

// buildJobs enumerates the representative (source,sink) connections to
// analyze: for every test tile, for every
// realizable connection length, the fill block type's driver pin at the
// test tile paired with its receiver pin at every tile reachable at that
// Manhattan distance. Each job's Weight is the length's probability split
// evenly across test tiles and, within a tile, across however many sink
// tiles realize that length — so the sum of every returned job's Weight is
// 1 (barring tiles/lengths that resolve no usable pin, which are skipped
// and logged rather than silently renormalized).
func buildJobs(store *rrgraph.Store, set *settings.Settings, maxConnLength int) []worker.Job {
	if len(store.BlockTypes()) == 0 {
		wlog.Info("no block types in store; pairing SOURCE/SINK nodes directly (RR_GRAPH_SIMPLE has no grid)", nil)
		return buildSimpleJobs(store, set, maxConnLength)
	}
	bt := store.BlockType(store.FillType())
	w, h := store.GridSize()

	var jobs []worker.Job
	numTiles := len(set.TestTileCoords)
	for _, tc := range set.TestTileCoords {
		srcNode, ok := findClassNode(store, bt, rrgraph.SOURCE, rrgraph.PinDriver, tc.X, tc.Y, set.PinProbabilities)
		if !ok {
			wlog.Info("test tile has no usable driver pin", map[string]any{"x": tc.X, "y": tc.Y})
			continue
		}
		for length := 1; length <= maxConnLength && length <= len(set.LengthProbabilities); length++ {
			p := set.LengthProbabilities[length-1]
			if p <= 0 {
				continue
			}
			sinkTiles := tilesAtManhattanDistance(tc, length, w, h)
			var usable []settings.Coordinate
			for _, st := range sinkTiles {
				if _, ok := findClassNode(store, bt, rrgraph.SINK, rrgraph.PinReceiver, st.X, st.Y, set.PinProbabilities); ok {
					usable = append(usable, st)
				}
			}
			if len(usable) == 0 {
				wlog.Info("no sink tile realizes connection length", map[string]any{"x": tc.X, "y": tc.Y, "length": length})
				continue
			}
			weight := p / float64(numTiles) / float64(len(usable))
			k := set.MaxPathWeight(length)
			for _, st := range usable {
				sinkNode, _ := findClassNode(store, bt, rrgraph.SINK, rrgraph.PinReceiver, st.X, st.Y, set.PinProbabilities)
				jobs = append(jobs, worker.Job{
					Source:     srcNode,
					Sink:       sinkNode,
					ConnLength: length,
					K:          k,
					Weight:     weight,
					TestTile:   tc,
					SinkTile:   st,
				})
			}
		}
	}
	return jobs
}

// buildSimpleJobs is the grid-less fallback: with no block types or tiles
// to derive connections from, every SOURCE is paired with every SINK whose
// Manhattan distance fits maxConnLength, weighted uniformly. Virtual
// sources are excluded; they are synthesized for pin diagnostics, not as
// real connection endpoints.
func buildSimpleJobs(store *rrgraph.Store, set *settings.Settings, maxConnLength int) []worker.Job {
	n := store.NumNodes()
	var sources, sinks []int
	for id := 0; id < n; id++ {
		nd := store.Node(id)
		switch {
		case nd.IsVirtualSource:
		case nd.Type == rrgraph.SOURCE:
			sources = append(sources, id)
		case nd.Type == rrgraph.SINK:
			sinks = append(sinks, id)
		}
	}

	var jobs []worker.Job
	for _, src := range sources {
		for _, snk := range sinks {
			a, b := store.Node(src), store.Node(snk)
			length := absInt(a.Xlow-b.Xlow) + absInt(a.Ylow-b.Ylow)
			if length > maxConnLength {
				continue
			}
			if length < 1 {
				length = 1 // same-tile pair still needs a nonzero weight cap
			}
			jobs = append(jobs, worker.Job{
				Source:     src,
				Sink:       snk,
				ConnLength: length,
				K:          set.MaxPathWeight(length),
				TestTile:   settings.Coordinate{X: a.Xlow, Y: a.Ylow},
				SinkTile:   settings.Coordinate{X: b.Xlow, Y: b.Ylow},
			})
		}
	}
	for i := range jobs {
		jobs[i].Weight = 1 / float64(len(jobs))
	}
	return jobs
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// findClassNode resolves the fill block type's first pin-class slot of the
// wanted PinType with nonzero probability, at tile (x,y), to a node id of
// classType (SOURCE for a driver pin-class, SINK for a receiver pin-class;
// SOURCE/SINK lookup entries are replicated across a multi-tile block's
// offsets, so any offset resolves to the root's class node).
func findClassNode(store *rrgraph.Store, bt *rrgraph.BlockType, classType rrgraph.RRType, want rrgraph.PinType, x, y int, pinProbs []float64) (int, bool) {
	for i, pin := range bt.Pins {
		if pin.Type != want || pin.Global {
			continue
		}
		if i >= len(pinProbs) || pinProbs[i] <= 0 {
			continue
		}
		ids := store.NodeIndices(classType, x, y, i)
		if len(ids) > 0 {
			return ids[0], true
		}
	}
	return 0, false
}

// findIPIN resolves the physical IPIN node (any side) backing the receiver
// pin-class slot chosen for sinkTile, for callers that want to run the
// Virtual-Source Shim against the real pin rather than its SINK class node.
func findIPIN(store *rrgraph.Store, bt *rrgraph.BlockType, x, y int, pinProbs []float64) (int, bool) {
	for i, pin := range bt.Pins {
		if pin.Type != rrgraph.PinReceiver || pin.Global {
			continue
		}
		if i >= len(pinProbs) || pinProbs[i] <= 0 {
			continue
		}
		ids := store.NodeIndices(rrgraph.IPIN, x, y, i)
		if len(ids) > 0 {
			return ids[0], true
		}
	}
	return 0, false
}

// tilesAtManhattanDistance returns every in-bounds (x,y) at Manhattan
// distance dist from center, walking the diamond's four edges.
func tilesAtManhattanDistance(center settings.Coordinate, dist, w, h int) []settings.Coordinate {
	seen := make(map[settings.Coordinate]bool)
	var out []settings.Coordinate
	add := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		c := settings.Coordinate{X: x, Y: y}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for dx := 0; dx <= dist; dx++ {
		dy := dist - dx
		add(center.X+dx, center.Y+dy)
		add(center.X+dx, center.Y-dy)
		add(center.X-dx, center.Y+dy)
		add(center.X-dx, center.Y-dy)
	}
	return out
}
