package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vcdkit/vcd2image/internal/categorize"
	"github.com/vcdkit/vcd2image/internal/extract"
	"github.com/vcdkit/vcd2image/internal/vcd"
)

// MultiRenderer auto-categorizes the signals of a VCD file and renders one
// WaveJSON document and HTML figure per non-empty category, each prefixed
// with the suggested clock.
type MultiRenderer struct {
	Skin      string
	WaveChunk int
	StartTime uint64
	EndTime   uint64
	Policy    vcd.SamplingPolicy
}

// NewMultiRenderer returns a multi renderer with default sampling
// parameters.
func NewMultiRenderer(skin string) *MultiRenderer {
	return &MultiRenderer{Skin: skin, WaveChunk: extract.DefaultWaveChunk}
}

// Figure is one rendered category.
type Figure struct {
	Category string
	JSONFile string
	HTMLFile string
	Signals  int
}

// RenderCategorized extracts and renders every signal category of vcdFile
// into outputDir, naming files <baseName>_<category>.{json,html}. It fails
// when no clock can be suggested; categories without signals or without
// samples are skipped.
func (m *MultiRenderer) RenderCategorized(vcdFile, outputDir, baseName string) ([]Figure, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	probe, err := extract.New(vcdFile, "", nil)
	if err != nil {
		return nil, err
	}
	categorizer := categorize.New()
	category := categorizer.Categorize(probe.Paths())
	clock := categorizer.SuggestClock(category)
	if clock == "" {
		return nil, fmt.Errorf("%w: no clock signal found in %s", vcd.ErrNoSignals, vcdFile)
	}

	buckets := []struct {
		name    string
		signals []string
	}{
		{"resets", category.Resets},
		{"inputs", category.Inputs},
		{"outputs", category.Outputs},
		{"internals", category.Internals},
	}

	renderer := NewRenderer(m.Skin)
	var figures []Figure
	for _, bucket := range buckets {
		signals := withoutPath(bucket.signals, clock)
		if len(signals) == 0 {
			continue
		}
		jsonFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s.json", baseName, bucket.name))
		htmlFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s.html", baseName, bucket.name))

		ex, err := extract.New(vcdFile, jsonFile, append([]string{clock}, signals...))
		if err != nil {
			return figures, err
		}
		ex.WaveChunk = m.WaveChunk
		ex.StartTime = m.StartTime
		ex.EndTime = m.EndTime
		ex.Policy = m.Policy

		sampled, err := ex.Execute()
		if err != nil {
			return figures, fmt.Errorf("extracting %s category: %w", bucket.name, err)
		}
		if !sampled {
			continue
		}
		if err := renderer.RenderHTML(jsonFile, htmlFile); err != nil {
			return figures, err
		}
		figures = append(figures, Figure{
			Category: bucket.name,
			JSONFile: jsonFile,
			HTMLFile: htmlFile,
			Signals:  len(signals),
		})
	}
	return figures, nil
}

func withoutPath(paths []string, exclude string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != exclude {
			out = append(out, p)
		}
	}
	return out
}
