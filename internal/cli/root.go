// Package cli implements the vcd2image command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/config"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcd2image",
	Short: "Convert VCD simulation traces to WaveJSON timing diagrams",
	Long: `vcd2image converts Value Change Dump (VCD) files produced by hardware
simulators into the WaveJSON timing-diagram format, and can render the
result as a standalone HTML page.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads defaults, the .vcd2image config file in the working
// directory and VCD2IMAGE_* environment overrides.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	return config.NewLoader(cwd).Load()
}
