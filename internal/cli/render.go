package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcdkit/vcd2image/internal/render"
)

var renderFlags struct {
	output string
	skin   string
}

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a WaveJSON file as an HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "", "output HTML file (default: input with .html extension)")
	f.StringVar(&renderFlags.skin, "skin", "", "WaveDrom skin name")
	rootCmd.AddCommand(renderCmd)
}

func runRender(jsonFile string) error {
	if !strings.HasSuffix(jsonFile, ".json") {
		return fmt.Errorf("input file must be a .json file: %s", jsonFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	skin := cfg.Render.Skin
	if renderFlags.skin != "" {
		skin = renderFlags.skin
	}

	htmlFile := renderFlags.output
	if htmlFile == "" {
		htmlFile = strings.TrimSuffix(jsonFile, ".json") + ".html"
	}

	if err := render.NewRenderer(skin).RenderHTML(jsonFile, htmlFile); err != nil {
		return err
	}
	log.Printf("Created HTML file: %s", htmlFile)
	return nil
}
