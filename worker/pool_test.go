package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RustamC/wotan/probanalysis"
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/worker"
)

// buildLine builds SOURCE(0)->CHANX(1)->CHANX(2)->SINK(3),
// one buffered switch. Every non-source node therefore costs weight 1.
func buildLine(t *testing.T) *rrgraph.Store {
	t.Helper()
	nodes := []rrgraph.Node{
		{ID: 0, Type: rrgraph.SOURCE, OutEdges: []rrgraph.Edge{{To: 1, Switch: 0}}, Demand: 0},
		{ID: 1, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 2, Switch: 0}}, Demand: 0.1},
		{ID: 2, Type: rrgraph.CHANX, OutEdges: []rrgraph.Edge{{To: 3, Switch: 0}}, Demand: 0.1},
		{ID: 3, Type: rrgraph.SINK, Demand: 0},
	}
	switches := []rrgraph.Switch{{Name: "buf", Buffered: true}}
	s, err := rrgraph.NewStore(nodes, switches, nil, nil, rrgraph.ChanWidth{})
	require.NoError(t, err)
	return s
}

func TestPool_Run_SingleLineJob(t *testing.T) {
	store := buildLine(t)
	pool := worker.NewPool(store, probanalysis.Config{Mode: probanalysis.ModeNone}, 2, nil)

	jobs := []worker.Job{{Source: 0, Sink: 3, ConnLength: 3, K: 3, Weight: 1}}
	result, err := pool.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Equal(t, 1, result.JobsRun)
	// Two nodes of demand 0.1 discount the line: reliability should land
	// strictly between 0 and 1, not saturate either way.
	require.Greater(t, result.Reliability, 0.0)
	require.Less(t, result.Reliability, 1.0)
	require.Equal(t, 1.0, result.TotalPaths, "single line has exactly one path")
}

func TestPool_Run_ManyJobsConcurrently(t *testing.T) {
	store := buildLine(t)
	pool := worker.NewPool(store, probanalysis.Config{Mode: probanalysis.ModeNone}, 4, nil)

	jobs := make([]worker.Job, 50)
	for i := range jobs {
		jobs[i] = worker.Job{Source: 0, Sink: 3, ConnLength: 3, K: 3, Weight: 1.0 / 50}
	}
	result, err := pool.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Equal(t, 50, result.JobsRun)
}

// TestPool_Run_AggregateMatchesNxSingleJob checks parallel determinism:
// running N identical jobs concurrently
// must produce an aggregate reliability contribution and path count equal
// to N times what one of those jobs produces alone, since each job's
// contribution is independent (Job.Weight scales it) and nothing shared
// mutates between jobs within a run (ModeNone's demand is job-invariant, and
// a fresh Pool means ModeRadius's cross-job history can't be in play
// either). This guards against a concurrency bug that only manifests as
// skewed aggregates, not a crash or data race.
func TestPool_Run_AggregateMatchesNxSingleJob(t *testing.T) {
	const n = 50
	// Weight 1/n keeps each job's own contribution, and the full aggregate,
	// within [0,1] without tripping clampReliability — a saturated aggregate
	// would make the N-times comparison meaningless.
	job := worker.Job{Source: 0, Sink: 3, ConnLength: 3, K: 3, Weight: 1.0 / n}

	singleStore := buildLine(t)
	singlePool := worker.NewPool(singleStore, probanalysis.Config{Mode: probanalysis.ModeNone}, 1, nil)
	single, err := singlePool.Run(context.Background(), []worker.Job{job})
	require.NoError(t, err)

	manyStore := buildLine(t)
	manyPool := worker.NewPool(manyStore, probanalysis.Config{Mode: probanalysis.ModeNone}, 8, nil)
	jobs := make([]worker.Job, n)
	for i := range jobs {
		jobs[i] = job
	}
	many, err := manyPool.Run(context.Background(), jobs)
	require.NoError(t, err)

	require.Equal(t, n, many.JobsRun)
	require.InDelta(t, float64(n)*single.Reliability, many.Reliability, 1e-9, "aggregate reliability must equal N times the single-job result")
	require.InDelta(t, float64(n)*single.TotalPaths, many.TotalPaths, 1e-9, "aggregate path count must equal N times the single-job result")
}

func TestSearchDemandMultiplier_FindsTarget(t *testing.T) {
	store := buildLine(t)
	pool := worker.NewPool(store, probanalysis.Config{Mode: probanalysis.ModeNone}, 2, nil)
	baseline := worker.SnapshotDemand(store)
	jobs := []worker.Job{{Source: 0, Sink: 3, ConnLength: 3, K: 3, Weight: 1}}

	mult, result, err := worker.SearchDemandMultiplier(context.Background(), pool, jobs, baseline, 0.5)
	require.NoError(t, err)
	require.Greater(t, mult, 0.0)
	require.NotNil(t, result)
}
