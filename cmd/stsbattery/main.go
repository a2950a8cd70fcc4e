package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "stsbattery",
	Short: "NIST SP 800-22 statistical test battery runner",
	Long: `stsbattery runs the NIST SP 800-22 statistical test suite against a
bit sequence, either read from a file or produced by a built-in PRNG,
and reports per-test pass rate and uniformity decisions.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}

// Commands are defined in separate files:
// - runCmd in run.go
// - generateCmd in generate.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
