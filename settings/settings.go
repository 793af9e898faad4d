// Package settings derives the analysis parameters for one run: per-pin
// usage probabilities, per-length connection probabilities (renormalized to
// the test area), and the list of test tiles path enumeration starts from.
package settings

import (
	"math"

	"github.com/RustamC/wotan/rrgraph"
)

// Coordinate is a single (x,y) tile position.
type Coordinate struct{ X, Y int }

// Settings holds the derived, read-only analysis parameters for one run.
type Settings struct {
	TestTileCoords      []Coordinate
	PinProbabilities    []float64 // indexed by pin-class slot of the fill block type
	LengthProbabilities []float64 // LengthProbabilities[L-1] for connection length L, L in 1..len()

	slack int
}

// Option configures Settings construction. Constructors panic on
// programmer error, never on data the caller can't control.
type Option func(*config)

type config struct {
	driverProb, receiverProb float64
	analyzeCore              bool
	slack                    int
	lengthProbs              []float64
}

// WithDriverProb sets the probability assigned to every non-global driver
// pin of the fill block type.
func WithDriverProb(p float64) Option {
	if p < 0 || p > 1 {
		panic("settings: WithDriverProb out of [0,1]")
	}
	return func(c *config) { c.driverProb = p }
}

// WithReceiverProb sets the probability assigned to every non-global
// receiver pin of the fill block type.
func WithReceiverProb(p float64) Option {
	if p < 0 || p > 1 {
		panic("settings: WithReceiverProb out of [0,1]")
	}
	return func(c *config) { c.receiverProb = p }
}

// WithAnalyzeCore restricts test tiles to the grid's interior.
func WithAnalyzeCore(v bool) Option {
	return func(c *config) { c.analyzeCore = v }
}

// WithSlack sets the detour allowance added to a connection's Manhattan
// length to get its max allowed path weight K. Must be >= 0.
func WithSlack(n int) Option {
	if n < 0 {
		panic("settings: WithSlack negative")
	}
	return func(c *config) { c.slack = n }
}

// WithLengthProbabilities supplies the user's raw length-probability list,
// indexed by length-1. Must sum to 1 within 1e-6 before realizable-length
// filtering; New returns ErrLengthProbsNotNormalized otherwise.
func WithLengthProbabilities(p []float64) Option {
	return func(c *config) { c.lengthProbs = p }
}

func defaultConfig() config {
	return config{driverProb: 1, receiverProb: 1, slack: 2}
}

// New derives Settings for store, applying opts over the defaults. It runs,
// in order: pin probabilities, test tile coordinates, then length
// probabilities (length filtering needs the test tile set to know which
// lengths are realizable).
func New(store *rrgraph.Store, opts ...Option) (*Settings, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if sum := sumOf(cfg.lengthProbs); len(cfg.lengthProbs) > 0 && math.Abs(sum-1) > tol {
		return nil, ErrLengthProbsNotNormalized
	}

	s := &Settings{slack: cfg.slack}
	s.allocAndSetPinProbabilities(store, cfg.driverProb, cfg.receiverProb)
	s.allocAndSetTestTileCoords(store, cfg.analyzeCore)
	if err := s.allocAndSetLengthProbabilities(store, cfg.lengthProbs); err != nil {
		return nil, err
	}
	return s, nil
}

const tol = 1e-6

func sumOf(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// MaxPathWeight returns K = connLength + slack, the weighted-distance cap
// used to bound legality for a connection of the given Manhattan length.
func (s *Settings) MaxPathWeight(connLength int) int {
	return connLength + s.slack
}
