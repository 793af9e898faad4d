package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/RustamC/wotan/metrics"
	"github.com/RustamC/wotan/pathenum"
	"github.com/RustamC/wotan/probanalysis"
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/ssdist"
	"github.com/RustamC/wotan/topo"
)

// Reducer is the thread-local accumulator one job contributes into while a
// worker goroutine owns it exclusively. Pool hands
// out a fixed pool of Reducers over a buffered channel, sized to NumThreads,
// so the hand-off itself bounds concurrency — no separate semaphore or
// errgroup.SetLimit call is needed, and nothing inside a held Reducer ever
// needs a lock.
type Reducer struct {
	total float64
	jobs  int
	paths float64
}

// Result is one run's aggregate outcome. TotalPaths is
// a diagnostic sum of each job's path-enumeration count (not folded into
// Reliability); it surfaces the path enumerator's output for callers that
// want to sanity-check connectivity independent of demand/congestion.
type Result struct {
	Reliability float64
	JobsRun     int
	TotalPaths  float64
}

// Pool runs a batch of Jobs against one rrgraph.Store with a bounded number
// of concurrent workers. Build one Pool per Store and reuse
// it across a demand-multiplier search's repeated probes.
type Pool struct {
	store      *rrgraph.Store
	oracles    *ssdist.Pool
	scratches  sync.Pool
	congestion probanalysis.Config
	numThreads int
	metrics    *metrics.Metrics

	reducers chan *Reducer
}

// NewPool builds a Pool bound to store, running congestion's self-
// congestion scheme across numThreads concurrent workers. m may be nil (no
// metrics recorded).
func NewPool(store *rrgraph.Store, congestion probanalysis.Config, numThreads int, m *metrics.Metrics) *Pool {
	if numThreads < 1 {
		numThreads = 1
	}
	p := &Pool{
		store:      store,
		oracles:    ssdist.NewPool(store),
		congestion: congestion,
		numThreads: numThreads,
		metrics:    m,
		reducers:   make(chan *Reducer, numThreads),
	}
	p.scratches.New = func() interface{} { return topo.NewScratch(store) }
	for i := 0; i < numThreads; i++ {
		p.reducers <- &Reducer{}
	}
	return p
}

// Store returns the Store this Pool runs jobs against, for callers (e.g.
// SearchDemandMultiplier) that need to rescale node demand between probes.
func (p *Pool) Store() *rrgraph.Store { return p.store }

// clampedProbabilityCounter returns the collector probanalysis should
// increment when it clamps an out-of-tolerance probability, or nil if this
// Pool has no metrics wired.
func (p *Pool) clampedProbabilityCounter() prometheus.Counter {
	if p.metrics == nil {
		return nil
	}
	return p.metrics.ClampedProbability
}

// Run schedules every job in jobs across p.numThreads workers and returns
// the combined Result. The first job error (including a recovered
// structural-invariant panic) cancels the run's context, so jobs that have
// not started yet return without running (jobs already running finish),
// and that error is returned; Result is nil in that case.
func (p *Pool) Run(ctx context.Context, jobs []Job) (*Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			red := <-p.reducers
			defer func() { p.reducers <- red }()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			contribution, paths, err := p.runJob(gctx, job)
			if err != nil {
				return err
			}
			if p.metrics != nil {
				p.metrics.JobsTotal.Inc()
				p.metrics.JobDuration.Observe(time.Since(start).Seconds())
			}
			red.total += contribution
			red.paths += paths
			red.jobs++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total, totalPaths float64
	var jobsRun int
	for i := 0; i < p.numThreads; i++ {
		red := <-p.reducers
		total += red.total
		totalPaths += red.paths
		jobsRun += red.jobs
		red.total, red.jobs, red.paths = 0, 0, 0
		p.reducers <- red
	}
	result := &Result{Reliability: clampReliability(total), JobsRun: jobsRun, TotalPaths: totalPaths}
	if p.metrics != nil {
		p.metrics.ReliabilityGauge.Set(result.Reliability)
	}
	return result, nil
}

// runJob executes D (Distance Oracle), a Forward and a Backward pass of E+F
// (path enumeration), and E+G (probability analysis: a Forward pass,
// preceded by a Backward pass in ModePathDependence) for one job, recovering any
// structural-invariant panic raised via assertf so it surfaces as an
// ordinary error to errgroup rather than a crash.
func (p *Pool) runJob(ctx context.Context, job Job) (contribution, paths float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			if sp, ok := r.(structuralPanic); ok {
				err = sp
				return
			}
			panic(r) // not ours: a genuine programmer error, let it propagate
		}
	}()

	oracle := p.oracles.Get()
	defer p.oracles.Put(oracle)
	oracle.Reset(job.Source, job.Sink, job.K)

	scratch := p.scratches.Get().(*topo.Scratch)
	defer p.scratches.Put(scratch)
	scratch.Reset(p.store.NumNodes(), job.K)

	var engine topo.Engine
	runPass := func(merger topo.Merger, dir topo.Direction) {
		if e := engine.Run(p.store, oracle, scratch, job.Source, job.Sink, dir, merger); e != nil {
			assertf(false, "worker: job source=%d sink=%d: %w", job.Source, job.Sink, e)
		}
	}

	counter := pathenum.New(pathenum.ByWeight)
	runPass(counter, topo.Forward)
	runPass(counter, topo.Backward)
	pathCount := pathenum.PathsThrough(p.store, scratch, job.Sink, job.K, pathenum.ByWeight)

	// Reachability only reads SourceBuckets (Forward's output). ModeNone and
	// ModeRadius never consult the edge ledger, so a Backward pass would
	// compute SinkBuckets nothing reads — skip it, rather than spend half
	// the analyzer's work on a row that's thrown away. ModePathDependence is
	// the one mode whose Forward pass depends on Backward having already run:
	// its edge ledger must hold Backward's attribution by the time Forward's
	// Merge looks it up, or the discount is always zero.
	analyzer := probanalysis.New(p.congestion, probanalysis.Endpoint(job.TestTile), probanalysis.Endpoint(job.SinkTile), p.clampedProbabilityCounter())
	if p.congestion.Mode == probanalysis.ModePathDependence {
		runPass(analyzer, topo.Backward)
	}
	runPass(analyzer, topo.Forward)

	pReach := probanalysis.Reachability(scratch, job.Sink, p.clampedProbabilityCounter())

	if p.congestion.Mode == probanalysis.ModeRadius {
		// Every node legal for this job carried part of the connection's
		// probability mass, so each accumulates history — the channel nodes
		// between the endpoints are exactly where later jobs' discounts
		// matter, not just the sink itself. RecordRadiusHistory drops nodes
		// beyond the radius of an endpoint on its own.
		src := probanalysis.Endpoint(job.TestTile)
		snk := probanalysis.Endpoint(job.SinkTile)
		for v := 0; v < p.store.NumNodes(); v++ {
			if !oracle.Legal(v) {
				continue
			}
			probanalysis.RecordRadiusHistory(p.store, v, p.congestion.Radius, src, rrgraph.HistorySource, pReach)
			probanalysis.RecordRadiusHistory(p.store, v, p.congestion.Radius, snk, rrgraph.HistorySink, pReach)
		}
	}

	return pReach * job.Weight, pathCount, nil
}

func clampReliability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
