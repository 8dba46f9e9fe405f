package cli

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/extract"
	"github.com/vcdkit/vcd2image/internal/render"
	"github.com/vcdkit/vcd2image/internal/vcd"
)

var extractFlags struct {
	output    string
	html      string
	signals   []string
	match     string
	waveChunk int
	startTime uint64
	endTime   uint64
	policy    string
	format    string
	dryRun    bool
	quiet     bool
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.vcd>",
	Short: "Extract signals from a VCD file into WaveJSON",
	Long: `Extract samples the requested signals from a VCD file and writes a
WaveJSON document. The first signal of the list is treated as the clock;
without -s/--match every declared signal is extracted, in declaration
order. Without -o the document goes to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.output, "output", "o", "", "output WaveJSON file (default: stdout)")
	f.StringVar(&extractFlags.html, "html", "", "also render the WaveJSON as an HTML page")
	f.StringSliceVarP(&extractFlags.signals, "signals", "s", nil, "signal paths to extract, clock first")
	f.StringVar(&extractFlags.match, "match", "", "glob pattern selecting additional signal paths")
	f.IntVar(&extractFlags.waveChunk, "wave-chunk", 0, "samples per time group")
	f.Uint64Var(&extractFlags.startTime, "start-time", 0, "sampling start time")
	f.Uint64Var(&extractFlags.endTime, "end-time", 0, "sampling end time (0 = until end)")
	f.StringVar(&extractFlags.policy, "policy", "", "sampling policy: every-timestamp or clock-falling-edge")
	f.StringVar(&extractFlags.format, "format", "", "display format for multi-bit signals: b, d, u, x, X")
	f.BoolVar(&extractFlags.dryRun, "dry-run", false, "show the extraction properties and exit")
	f.BoolVarP(&extractFlags.quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, vcdFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pathList := extractFlags.signals
	if extractFlags.match != "" {
		matched, err := matchSignalPaths(vcdFile, extractFlags.match)
		if err != nil {
			return err
		}
		pathList = appendUnique(pathList, matched...)
	}

	ex, err := extract.New(vcdFile, extractFlags.output, pathList)
	if err != nil {
		return err
	}

	ex.WaveChunk = cfg.Extract.WaveChunk
	ex.StartTime = cfg.Extract.StartTime
	ex.EndTime = cfg.Extract.EndTime
	ex.Policy, _ = vcd.ParseSamplingPolicy(cfg.Extract.Policy)
	if cmd.Flags().Changed("wave-chunk") {
		ex.WaveChunk = extractFlags.waveChunk
	}
	if cmd.Flags().Changed("start-time") {
		ex.StartTime = extractFlags.startTime
	}
	if cmd.Flags().Changed("end-time") {
		ex.EndTime = extractFlags.endTime
	}
	if extractFlags.policy != "" {
		policy, err := vcd.ParseSamplingPolicy(extractFlags.policy)
		if err != nil {
			return err
		}
		ex.Policy = policy
	}
	if ex.WaveChunk <= 0 {
		return fmt.Errorf("wave-chunk must be positive, got %d", ex.WaveChunk)
	}

	if extractFlags.format != "" {
		format, err := vcd.ParseDisplayFormat(extractFlags.format)
		if err != nil {
			return err
		}
		for _, path := range ex.PathList() {
			if err := ex.SetFormat(path, format); err != nil {
				return err
			}
		}
	}

	if extractFlags.dryRun {
		ex.Describe(os.Stdout)
		return nil
	}

	// progress bars share stdout with the document, so only show them when
	// writing to a file
	if !extractFlags.quiet && extractFlags.output != "" {
		ex.Progress = newProgressReporter()
	}

	sampled, err := ex.Execute()
	if err != nil {
		return err
	}
	if !sampled {
		return fmt.Errorf("no signal samples found in %s", vcdFile)
	}
	if verbose && extractFlags.output != "" {
		log.Printf("Created WaveJSON file: %s", extractFlags.output)
	}

	if extractFlags.html != "" {
		jsonFile := extractFlags.output
		if jsonFile == "" {
			return fmt.Errorf("--html requires -o/--output")
		}
		if err := render.NewRenderer(cfg.Render.Skin).RenderHTML(jsonFile, extractFlags.html); err != nil {
			return err
		}
		if verbose {
			log.Printf("Created HTML file: %s", extractFlags.html)
		}
	}
	return nil
}

func appendUnique(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		seen[strings.Trim(item, "/")] = true
	}
	for _, item := range items {
		if !seen[strings.Trim(item, "/")] {
			seen[strings.Trim(item, "/")] = true
			list = append(list, item)
		}
	}
	return list
}
