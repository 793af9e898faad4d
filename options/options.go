// Package options holds every field the analysis core needs from the
// outside world, loadable from YAML or built via functional options.
// Option constructors validate and panic on meaningless inputs; the core
// algorithms never do.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RRGraphMode selects which subset of the RR-graph XML schema a Loader
// accepts.
type RRGraphMode string

const (
	ModeVPR    RRGraphMode = "vpr"
	ModeSimple RRGraphMode = "simple"
)

// SelfCongestionMode mirrors probanalysis.Mode as a YAML-friendly string,
// translated at the call site that constructs a probanalysis.Config (kept
// out of this package to avoid options depending on probanalysis).
type SelfCongestionMode string

const (
	CongestionNone           SelfCongestionMode = "none"
	CongestionRadius         SelfCongestionMode = "radius"
	CongestionPathDependence SelfCongestionMode = "path_dependence"
)

// UserOptions is the full configuration surface of one analysis run.
type UserOptions struct {
	RRGraphFile         string      `yaml:"rr_graph_file"`
	RRGraphMode         RRGraphMode `yaml:"rr_graph_mode"`
	MaxConnectionLength int         `yaml:"max_connection_length"`
	AnalyzeCore         bool        `yaml:"analyze_core"`

	// UseRoutingNodeDemand is float-or-unset: nil means the loader's
	// parsed per-node demand is used as-is.
	UseRoutingNodeDemand *float64 `yaml:"use_routing_node_demand"`

	NumThreads int `yaml:"num_threads"`

	// TargetReliability is "float or unset": nil disables the outer
	// binary-search loop entirely (worker.SearchDemandMultiplier is only
	// invoked when this is set).
	TargetReliability *float64 `yaml:"target_reliability"`

	SelfCongestionMode   SelfCongestionMode `yaml:"self_congestion_mode"`
	SelfCongestionRadius int                `yaml:"self_congestion_radius"`

	IpinProbability  float64 `yaml:"ipin_probability"`
	OpinProbability  float64 `yaml:"opin_probability"`
	DemandMultiplier float64 `yaml:"demand_multiplier"`

	LengthProbabilities []float64 `yaml:"length_probabilities"`

	// MetricsAddr, set by cmd/wotan from a flag, travels on the same
	// struct since cmd/wotan builds one UserOptions from flags+config.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Option customizes a UserOptions via the functional-options pattern.
type Option func(*UserOptions)

// WithRRGraphFile sets the path to load.
func WithRRGraphFile(path string) Option {
	if path == "" {
		panic("options: WithRRGraphFile(\"\")")
	}
	return func(o *UserOptions) { o.RRGraphFile = path }
}

// WithRRGraphMode selects the XML schema subset.
func WithRRGraphMode(mode RRGraphMode) Option {
	if mode != ModeVPR && mode != ModeSimple {
		panic("options: WithRRGraphMode: unknown mode " + string(mode))
	}
	return func(o *UserOptions) { o.RRGraphMode = mode }
}

// WithMaxConnectionLength sets the longest connection length exercised.
// Must be >= 1.
func WithMaxConnectionLength(n int) Option {
	if n < 1 {
		panic("options: WithMaxConnectionLength(n<1)")
	}
	return func(o *UserOptions) { o.MaxConnectionLength = n }
}

// WithAnalyzeCore restricts test tiles to the grid interior.
func WithAnalyzeCore(v bool) Option {
	return func(o *UserOptions) { o.AnalyzeCore = v }
}

// WithRoutingNodeDemand overrides every node's parsed demand with d.
func WithRoutingNodeDemand(d float64) Option {
	if d < 0 {
		panic("options: WithRoutingNodeDemand(d<0)")
	}
	return func(o *UserOptions) { o.UseRoutingNodeDemand = &d }
}

// WithNumThreads sets the worker pool size. Must be > 0.
func WithNumThreads(n int) Option {
	if n <= 0 {
		panic("options: WithNumThreads(n<=0)")
	}
	return func(o *UserOptions) { o.NumThreads = n }
}

// WithTargetReliability enables the outer demand-multiplier search.
func WithTargetReliability(r float64) Option {
	if r < 0 || r > 1 {
		panic("options: WithTargetReliability out of [0,1]")
	}
	return func(o *UserOptions) { o.TargetReliability = &r }
}

// WithSelfCongestionMode selects the discounting scheme.
func WithSelfCongestionMode(m SelfCongestionMode) Option {
	switch m {
	case CongestionNone, CongestionRadius, CongestionPathDependence:
	default:
		panic("options: WithSelfCongestionMode: unknown mode " + string(m))
	}
	return func(o *UserOptions) { o.SelfCongestionMode = m }
}

// WithSelfCongestionRadius sets the radius ModeRadius searches.
func WithSelfCongestionRadius(r int) Option {
	if r < 0 {
		panic("options: WithSelfCongestionRadius(r<0)")
	}
	return func(o *UserOptions) { o.SelfCongestionRadius = r }
}

// WithPinProbabilities sets the IPIN/OPIN usage probabilities.
func WithPinProbabilities(ipin, opin float64) Option {
	if ipin < 0 || ipin > 1 || opin < 0 || opin > 1 {
		panic("options: WithPinProbabilities out of [0,1]")
	}
	return func(o *UserOptions) { o.IpinProbability, o.OpinProbability = ipin, opin }
}

// WithDemandMultiplier sets the scalar applied to every node's demand
// before analysis (the quantity worker.SearchDemandMultiplier searches
// over, when TargetReliability is set).
func WithDemandMultiplier(m float64) Option {
	if m < 0 {
		panic("options: WithDemandMultiplier(m<0)")
	}
	return func(o *UserOptions) { o.DemandMultiplier = m }
}

// WithLengthProbabilities supplies the raw per-length distribution.
func WithLengthProbabilities(p []float64) Option {
	return func(o *UserOptions) { o.LengthProbabilities = append([]float64(nil), p...) }
}

// WithMetricsAddr enables a Prometheus HTTP endpoint at addr.
func WithMetricsAddr(addr string) Option {
	return func(o *UserOptions) { o.MetricsAddr = addr }
}

// defaults returns the baseline UserOptions before any Option or config
// file is applied.
func defaults() UserOptions {
	return UserOptions{
		RRGraphMode:          ModeSimple,
		MaxConnectionLength:  4,
		NumThreads:           1,
		SelfCongestionMode:   CongestionNone,
		SelfCongestionRadius: 3,
		IpinProbability:      1,
		OpinProbability:      1,
		DemandMultiplier:     1,
	}
}

// New builds a UserOptions from defaults, applying opts in order.
func New(opts ...Option) (*UserOptions, error) {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Load reads a YAML config file into a UserOptions seeded with defaults,
// then applies opts on top (so CLI flags can override file values — see
// cmd/wotan's --config handling).
func Load(path string, opts ...Option) (*UserOptions, error) {
	o := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("options: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("options: parsing %s: %w", path, err)
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks the fatal configuration-error conditions:
// length_probabilities must sum to 1 before realizable-length filtering
// (settings.New performs the filtering itself and returns its own error if
// that step fails; here we only check the raw sum), num_threads > 0,
// max_connection_length >= 1.
func (o *UserOptions) Validate() error {
	if o.NumThreads <= 0 {
		return fmt.Errorf("%w: num_threads=%d", ErrInvalidNumThreads, o.NumThreads)
	}
	if o.MaxConnectionLength < 1 {
		return fmt.Errorf("%w: max_connection_length=%d", ErrInvalidMaxConnLength, o.MaxConnectionLength)
	}
	if len(o.LengthProbabilities) > 0 {
		var sum float64
		for _, p := range o.LengthProbabilities {
			sum += p
		}
		if abs(sum-1) > tol {
			return fmt.Errorf("%w: sum=%f", ErrLengthProbsNotNormalized, sum)
		}
	}
	if o.RRGraphFile == "" {
		return ErrMissingRRGraphFile
	}
	return nil
}

const tol = 1e-6

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
