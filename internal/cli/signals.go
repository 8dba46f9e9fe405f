package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/categorize"
	"github.com/vcdkit/vcd2image/internal/extract"
)

var signalsFlags struct {
	match      string
	categorize bool
	suggest    bool
}

var signalsCmd = &cobra.Command{
	Use:   "signals <file.vcd>",
	Short: "List the signals declared in a VCD file",
	Long: `Signals lists every signal declared in the VCD header with its path,
bit width and identifier code. With --categorize the signals are grouped
into clock/reset/input/output/internal buckets; --suggest-clock prints the
path the categorizer would pick as the sampling clock.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignals(args[0])
	},
}

func init() {
	f := signalsCmd.Flags()
	f.StringVar(&signalsFlags.match, "match", "", "only list paths matching this glob pattern")
	f.BoolVar(&signalsFlags.categorize, "categorize", false, "group signals by heuristic category")
	f.BoolVar(&signalsFlags.suggest, "suggest-clock", false, "print the suggested clock path")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(vcdFile string) error {
	probe, err := extract.New(vcdFile, "", nil)
	if err != nil {
		return err
	}
	paths := probe.Paths()

	if signalsFlags.categorize || signalsFlags.suggest {
		categorizer := categorize.New()
		category := categorizer.Categorize(paths)
		if signalsFlags.suggest {
			clock := categorizer.SuggestClock(category)
			if clock == "" {
				return fmt.Errorf("no clock candidate found in %s", vcdFile)
			}
			fmt.Println(clock)
			return nil
		}
		for _, bucket := range []struct {
			name  string
			paths []string
		}{
			{"clocks", category.Clocks},
			{"resets", category.Resets},
			{"inputs", category.Inputs},
			{"outputs", category.Outputs},
			{"internals", category.Internals},
			{"unknowns", category.Unknowns},
		} {
			if len(bucket.paths) == 0 {
				continue
			}
			fmt.Printf("%s:\n", bucket.name)
			for _, path := range bucket.paths {
				fmt.Printf("  %s\n", path)
			}
		}
		return nil
	}

	var matcher glob.Glob
	if signalsFlags.match != "" {
		matcher, err = glob.Compile(signalsFlags.match, '/')
		if err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tWIDTH\tID")
	for _, def := range paths.Defs() {
		if matcher != nil && !matcher.Match(def.Path) {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", def.Path, def.Width, def.ID)
	}
	return w.Flush()
}

// matchSignalPaths returns the declared paths of vcdFile matching pattern,
// in declaration order.
func matchSignalPaths(vcdFile, pattern string) ([]string, error) {
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid --match pattern: %w", err)
	}
	probe, err := extract.New(vcdFile, "", nil)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, path := range probe.Paths().Paths() {
		if matcher.Match(path) {
			matched = append(matched, path)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no signals match pattern %q", pattern)
	}
	return matched, nil
}
