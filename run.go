package wotan

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RustamC/wotan/metrics"
	"github.com/RustamC/wotan/options"
	"github.com/RustamC/wotan/rrgraph"
	"github.com/RustamC/wotan/rrio"
	"github.com/RustamC/wotan/settings"
	"github.com/RustamC/wotan/vsource"
	"github.com/RustamC/wotan/wlog"
	"github.com/RustamC/wotan/worker"
)

// Result is Run's top-level outcome: the aggregate reliability estimate,
// how many jobs contributed to it, and — only meaningful when
// opt.TargetReliability was set — the demand multiplier the binary search
// converged on.
type Result struct {
	Reliability      float64
	JobsRun          int
	TotalPaths       float64
	DemandMultiplier float64
}

// Run executes one full analysis per opt: load the RR graph (rrio), derive
// the analysis settings (settings), dispatch the worker pool (worker) over
// the derived connection jobs, and — if TargetReliability is set —
// binary-search for the demand multiplier that hits it.
func Run(ctx context.Context, opt *options.UserOptions) (*Result, error) {
	store, err := loadStore(opt)
	if err != nil {
		return nil, err
	}
	applyDemand(store, opt)

	set, err := settings.New(store,
		settings.WithDriverProb(opt.OpinProbability),
		settings.WithReceiverProb(opt.IpinProbability),
		settings.WithAnalyzeCore(opt.AnalyzeCore),
		settings.WithLengthProbabilities(opt.LengthProbabilities),
	)
	if err != nil {
		return nil, fmt.Errorf("wotan: deriving analysis settings: %w", err)
	}

	jobs := buildJobs(store, set, opt.MaxConnectionLength)
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	diagnoseVirtualSources(store, set, jobs, opt.MaxConnectionLength)

	var m *metrics.Metrics
	if opt.MetricsAddr != "" {
		m = metrics.New()
		if err := m.Register(prometheus.DefaultRegisterer); err != nil {
			return nil, fmt.Errorf("wotan: registering metrics: %w", err)
		}
	}
	pool := worker.NewPool(store, congestionConfig(opt), opt.NumThreads, m)

	if opt.TargetReliability != nil {
		baseline := worker.SnapshotDemand(store)
		mult, res, err := worker.SearchDemandMultiplier(ctx, pool, jobs, baseline, *opt.TargetReliability)
		if err != nil {
			return nil, err
		}
		if m != nil {
			m.DemandMultiplier.Set(mult)
		}
		return &Result{Reliability: res.Reliability, JobsRun: res.JobsRun, TotalPaths: res.TotalPaths, DemandMultiplier: mult}, nil
	}

	res, err := pool.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}
	return &Result{Reliability: res.Reliability, JobsRun: res.JobsRun, TotalPaths: res.TotalPaths, DemandMultiplier: opt.DemandMultiplier}, nil
}

// loadStore opens opt.RRGraphFile and decodes it per opt.RRGraphMode.
func loadStore(opt *options.UserOptions) (*rrgraph.Store, error) {
	f, err := os.Open(opt.RRGraphFile)
	if err != nil {
		return nil, fmt.Errorf("wotan: opening %s: %w", opt.RRGraphFile, err)
	}
	defer f.Close()

	loader := rrio.XMLLoader{}
	switch opt.RRGraphMode {
	case options.ModeVPR:
		return loader.LoadVPR(f)
	case options.ModeSimple:
		return loader.LoadSimple(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRRGraphMode, opt.RRGraphMode)
	}
}

// diagnoseVirtualSources exercises the Virtual-Source Shim (package
// vsource, component I) against every distinct IPIN a job's sink resolved
// from: it is not part of the reliability aggregate (a job's sink is the
// SINK class node, not the pin itself), but it surfaces, per pin, how many
// routing nodes a bounded backward walk can reach without going through a
// real SOURCE — useful as an independent sanity check on connectivity, and
// the natural place in this codebase that actually calls Synthesize.
func diagnoseVirtualSources(store *rrgraph.Store, set *settings.Settings, jobs []worker.Job, maxDepth int) {
	if len(store.BlockTypes()) == 0 {
		return
	}
	bt := store.BlockType(store.FillType())
	seen := make(map[int]bool)
	for _, job := range jobs {
		if seen[job.Sink] {
			continue
		}
		seen[job.Sink] = true
		ipin, ok := findIPIN(store, bt, job.SinkTile.X, job.SinkTile.Y, set.PinProbabilities)
		if !ok {
			continue
		}
		vs, err := vsource.Synthesize(store, ipin, maxDepth)
		if err != nil {
			continue // no predecessors within maxDepth hops; nothing to report
		}
		wlog.Info("virtual source synthesized", map[string]any{
			"pin":          ipin,
			"virtualNode":  vs.NodeID,
			"predecessors": len(vs.Predecessors),
		})
	}
}
