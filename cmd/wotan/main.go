package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RustamC/wotan/wlog"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wotan",
	Short: "Estimate routing-resource graph reliability",
	Long: `wotan loads an FPGA routing-resource graph and estimates the
probability that representative source-to-sink connections remain
reachable under per-node routing demand and optional self-congestion
discounting.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			wlog.SetLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (defaults stacked under any flags given)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
