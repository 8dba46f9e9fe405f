package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/extract"
	"github.com/vcdkit/vcd2image/internal/vcd"
)

var watchFlags struct {
	output   string
	signals  []string
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch <file.vcd>",
	Short: "Re-extract WaveJSON whenever the VCD file changes",
	Long: `Watch runs an extraction, then keeps watching the VCD file and re-runs
the extraction each time the simulator rewrites it. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(args[0])
	},
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchFlags.output, "output", "o", "", "output WaveJSON file (required)")
	f.StringSliceVarP(&watchFlags.signals, "signals", "s", nil, "signal paths to extract, clock first")
	f.DurationVar(&watchFlags.debounce, "debounce", 500*time.Millisecond, "delay before re-extracting after a change")
	watchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(vcdFile string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	absFile, err := filepath.Abs(vcdFile)
	if err != nil {
		return err
	}

	extractOnce := func() {
		if err := watchExtract(vcdFile); err != nil {
			log.Printf("Extraction failed: %v", err)
			return
		}
		log.Printf("Updated %s", watchFlags.output)
	}
	extractOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// watch the directory, not the file: simulators typically replace the
	// VCD file, which would drop a file-level watch
	if err := watcher.Add(filepath.Dir(absFile)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absFile), err)
	}
	log.Printf("Watching %s (Ctrl-C to stop)", vcdFile)

	var debounce *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if changed != absFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchFlags.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			extractOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

// watchExtract performs one extraction run with the watch flags and the
// loaded configuration.
func watchExtract(vcdFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex, err := extract.New(vcdFile, watchFlags.output, watchFlags.signals)
	if err != nil {
		return err
	}
	ex.WaveChunk = cfg.Extract.WaveChunk
	ex.StartTime = cfg.Extract.StartTime
	ex.EndTime = cfg.Extract.EndTime
	ex.Policy, _ = vcd.ParseSamplingPolicy(cfg.Extract.Policy)

	sampled, err := ex.Execute()
	if err != nil {
		return err
	}
	if !sampled {
		return fmt.Errorf("no signal samples found in %s", vcdFile)
	}
	return nil
}
