package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/render"
	"github.com/vcdkit/vcd2image/internal/vcd"
)

var plotFlags struct {
	outDir   string
	baseName string
	skin     string
}

var plotCmd = &cobra.Command{
	Use:   "plot <file.vcd>",
	Short: "Auto-categorize signals and render one figure per category",
	Long: `Plot categorizes every signal in the VCD file, picks a clock, and
writes one WaveJSON document and one HTML figure per non-empty category
(resets, inputs, outputs, internals) into the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlot(args[0])
	},
}

func init() {
	f := plotCmd.Flags()
	f.StringVar(&plotFlags.outDir, "out-dir", "figures", "output directory for generated files")
	f.StringVar(&plotFlags.baseName, "base-name", "waveform", "base name for output files")
	f.StringVar(&plotFlags.skin, "skin", "", "WaveDrom skin name")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(vcdFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	skin := cfg.Render.Skin
	if plotFlags.skin != "" {
		skin = plotFlags.skin
	}

	multi := render.NewMultiRenderer(skin)
	multi.WaveChunk = cfg.Extract.WaveChunk
	multi.StartTime = cfg.Extract.StartTime
	multi.EndTime = cfg.Extract.EndTime
	multi.Policy, _ = vcd.ParseSamplingPolicy(cfg.Extract.Policy)

	figures, err := multi.RenderCategorized(vcdFile, plotFlags.outDir, plotFlags.baseName)
	if err != nil {
		return err
	}
	for _, figure := range figures {
		log.Printf("Created %s figure: %s (%d signals)", figure.Category, figure.HTMLFile, figure.Signals)
	}
	log.Printf("Generated %d categorized figure(s) in %s", len(figures), plotFlags.outDir)
	return nil
}
