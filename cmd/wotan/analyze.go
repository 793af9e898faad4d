package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/RustamC/wotan"
	"github.com/RustamC/wotan/options"
	"github.com/RustamC/wotan/wlog"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Args:  cobra.NoArgs,
	Short: "Run one reliability analysis and print the result",
	RunE:  runAnalyze,
}

var flags struct {
	rrGraphFile         string
	rrGraphMode         string
	maxConnectionLength int
	analyzeCore         bool
	routingNodeDemand   float64
	numThreads          int
	targetReliability   float64
	selfCongestionMode  string
	selfCongestionRadius int
	ipinProbability     float64
	opinProbability     float64
	demandMultiplier    float64
	lengthProbabilities string
	metricsAddr         string
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&flags.rrGraphFile, "rr-graph-file", "", "path to the RR-graph XML file (required)")
	f.StringVar(&flags.rrGraphMode, "rr-graph-mode", "simple", "RR-graph schema: vpr or simple")
	f.IntVar(&flags.maxConnectionLength, "max-connection-length", 4, "longest connection length exercised")
	f.BoolVar(&flags.analyzeCore, "analyze-core", false, "restrict test tiles to the grid interior")
	f.Float64Var(&flags.routingNodeDemand, "use-routing-node-demand", 0, "override every node's parsed demand")
	f.IntVar(&flags.numThreads, "num-threads", 1, "worker pool size")
	f.Float64Var(&flags.targetReliability, "target-reliability", 0, "enable the demand-multiplier binary search toward this reliability")
	f.StringVar(&flags.selfCongestionMode, "self-congestion-mode", "none", "self-congestion discount: none, radius, or path_dependence")
	f.IntVar(&flags.selfCongestionRadius, "self-congestion-radius", 3, "Manhattan radius ModeRadius looks up history within")
	f.Float64Var(&flags.ipinProbability, "ipin-probability", 1, "probability assigned to non-global receiver pins")
	f.Float64Var(&flags.opinProbability, "opin-probability", 1, "probability assigned to non-global driver pins")
	f.Float64Var(&flags.demandMultiplier, "demand-multiplier", 1, "scalar applied to every node's demand before analysis")
	f.StringVar(&flags.lengthProbabilities, "length-probabilities", "", "comma-separated per-length probability list (must sum to 1)")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (disabled if empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return fmt.Errorf("wotan: invalid options: %w", err)
	}

	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(opts.MetricsAddr, mux); err != nil {
				wlog.L.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	result, err := wotan.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	fmt.Printf("reliability: %.6f\n", result.Reliability)
	if opts.TargetReliability != nil {
		fmt.Printf("demand_multiplier: %.6f\n", result.DemandMultiplier)
	}
	return nil
}

// buildOptions assembles a *options.UserOptions from --config (if given,
// its values seed the baseline) and every flag the user explicitly set
// (flags override the config file, matching cmd/wotan's documented
// precedence).
func buildOptions(cmd *cobra.Command) (*options.UserOptions, error) {
	var overrides []options.Option
	set := cmd.Flags().Changed

	if set("rr-graph-file") {
		overrides = append(overrides, options.WithRRGraphFile(flags.rrGraphFile))
	}
	if set("rr-graph-mode") {
		mode, err := parseRRGraphMode(flags.rrGraphMode)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, options.WithRRGraphMode(mode))
	}
	if set("max-connection-length") {
		overrides = append(overrides, options.WithMaxConnectionLength(flags.maxConnectionLength))
	}
	if set("analyze-core") {
		overrides = append(overrides, options.WithAnalyzeCore(flags.analyzeCore))
	}
	if set("use-routing-node-demand") {
		overrides = append(overrides, options.WithRoutingNodeDemand(flags.routingNodeDemand))
	}
	if set("num-threads") {
		overrides = append(overrides, options.WithNumThreads(flags.numThreads))
	}
	if set("target-reliability") {
		overrides = append(overrides, options.WithTargetReliability(flags.targetReliability))
	}
	if set("self-congestion-mode") {
		mode, err := parseCongestionMode(flags.selfCongestionMode)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, options.WithSelfCongestionMode(mode))
	}
	if set("self-congestion-radius") {
		overrides = append(overrides, options.WithSelfCongestionRadius(flags.selfCongestionRadius))
	}
	if set("ipin-probability") || set("opin-probability") {
		ipin, opin := flags.ipinProbability, flags.opinProbability
		overrides = append(overrides, func(o *options.UserOptions) {
			if !set("ipin-probability") {
				ipin = o.IpinProbability
			}
			if !set("opin-probability") {
				opin = o.OpinProbability
			}
			options.WithPinProbabilities(ipin, opin)(o)
		})
	}
	if set("demand-multiplier") {
		overrides = append(overrides, options.WithDemandMultiplier(flags.demandMultiplier))
	}
	if set("length-probabilities") {
		probs, err := parseLengthProbabilities(flags.lengthProbabilities)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, options.WithLengthProbabilities(probs))
	}
	if set("metrics-addr") {
		overrides = append(overrides, options.WithMetricsAddr(flags.metricsAddr))
	}

	if cfgFile != "" {
		return options.Load(cfgFile, overrides...)
	}
	return options.New(overrides...)
}

func parseRRGraphMode(s string) (options.RRGraphMode, error) {
	switch s {
	case "vpr":
		return options.ModeVPR, nil
	case "simple":
		return options.ModeSimple, nil
	default:
		return "", fmt.Errorf("unknown --rr-graph-mode %q", s)
	}
}

func parseCongestionMode(s string) (options.SelfCongestionMode, error) {
	switch s {
	case "none":
		return options.CongestionNone, nil
	case "radius":
		return options.CongestionRadius, nil
	case "path_dependence":
		return options.CongestionPathDependence, nil
	default:
		return "", fmt.Errorf("unknown --self-congestion-mode %q", s)
	}
}

func parseLengthProbabilities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing --length-probabilities entry %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
