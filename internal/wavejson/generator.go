// Package wavejson renders sampled VCD signals into the WaveJSON
// timing-diagram format consumed by WaveDrom-style renderers.
package wavejson

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vcdkit/vcd2image/internal/vcd"
)

// Generator produces one WaveJSON document from sample groups.
//
// The first path in pathList is the clock: it is emitted once in the header
// block as a pulse spanning the chunk width, and skipped in the body blocks.
// Every other path yields one entry per sample group, in path-list order.
//
// The layout is line-oriented and canonical: signal names are quoted and
// left-justified to the longest name, groups are separated by an empty
// object, and each group opens with the simulation time of its first
// sample. Golden tests compare output byte for byte.
type Generator struct {
	pathList  []string
	paths     *vcd.PathMap
	waveChunk int
	clockName string
	nameWidth int
}

// NewGenerator returns a generator for the given ordered path list. The
// path list must be non-empty and every path must be present in paths.
func NewGenerator(pathList []string, paths *vcd.PathMap, waveChunk int) (*Generator, error) {
	if len(pathList) == 0 {
		return nil, vcd.ErrNoSignals
	}
	nameWidth := 0
	for _, path := range pathList {
		def := paths.Get(path)
		if def == nil {
			return nil, fmt.Errorf("%w: %s", vcd.ErrSignalNotFound, path)
		}
		if len(def.Name) > nameWidth {
			nameWidth = len(def.Name)
		}
	}
	return &Generator{
		pathList:  pathList,
		paths:     paths,
		waveChunk: waveChunk,
		clockName: paths.Get(pathList[0]).Name,
		nameWidth: nameWidth,
	}, nil
}

// Generate renders the complete WaveJSON document.
func (g *Generator) Generate(groups []vcd.SampleGroup) string {
	var b strings.Builder
	g.writeHeader(&b)
	for _, group := range groups {
		g.writeBody(&b, group)
	}
	b.WriteString("\n  ]\n}")
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder) {
	wave := "p" + strings.Repeat(".", g.waveChunk-1)
	fmt.Fprintf(b, "{ \"head\": {\"tock\":1},\n  \"signal\": [\n  {   \"name\": %s, \"wave\": %q }",
		g.paddedName(g.clockName), wave)
}

func (g *Generator) writeBody(b *strings.Builder, group vcd.SampleGroup) {
	b.WriteString(",\n  {}")
	fmt.Fprintf(b, ",\n  [\"%d\"", group.Origin)

	for _, path := range g.pathList[1:] {
		def := g.paths.Get(path)
		samples := group.Samples[def.ID]

		if def.Width == 1 {
			fmt.Fprintf(b, ",\n    { \"name\": %s, \"wave\": %q }",
				g.paddedName(def.Name), encodeWave(samples))
		} else {
			wave, data := encodeWaveData(samples, def.Width, def.Format)
			fmt.Fprintf(b, ",\n    { \"name\": %s, \"wave\": %q, \"data\": %q }",
				g.paddedName(def.Name), wave, data)
		}
	}
	b.WriteString("\n  ]")
}

// paddedName quotes name and left-justifies it so all entries line up.
func (g *Generator) paddedName(name string) string {
	return fmt.Sprintf("%-*s", g.nameWidth+2, `"`+name+`"`)
}

// encodeWave run-length encodes a single-bit sample sequence: a value equal
// to its predecessor becomes ".", anything else is emitted literally.
func encodeWave(samples []string) string {
	var wave strings.Builder
	prev := ""
	first := true
	for _, value := range samples {
		if !first && value == prev {
			wave.WriteString(".")
		} else {
			wave.WriteString(value)
		}
		prev = value
		first = false
	}
	return wave.String()
}

// encodeWaveData run-length encodes a multi-bit sample sequence. Changed
// binary values become "=" with the formatted value appended to the data
// string; all-z values become "z"; anything else (x or corrupt digits)
// becomes "x".
func encodeWaveData(samples []string, width int, format vcd.DisplayFormat) (string, string) {
	var wave strings.Builder
	var data []string
	prev := ""
	first := true
	for _, value := range samples {
		switch {
		case !first && value == prev:
			wave.WriteString(".")
		case isBinary(value):
			wave.WriteString("=")
			data = append(data, formatValue(value, width, format))
		case isAllZ(value):
			wave.WriteString("z")
		default:
			wave.WriteString("x")
		}
		prev = value
		first = false
	}
	return wave.String(), strings.Join(data, " ")
}

func isBinary(value string) bool {
	if value == "" {
		return false
	}
	for _, c := range value {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

func isAllZ(value string) bool {
	if value == "" {
		return false
	}
	for _, c := range value {
		if c != 'z' {
			return false
		}
	}
	return true
}

// formatValue renders a binary digit string as a width-bit integer in the
// requested display format. Values shorter than width are zero-extended on
// the left, per the VCD convention of omitting leading zeros. A value that
// is not pure binary renders as "x".
func formatValue(value string, width int, format vcd.DisplayFormat) string {
	n, ok := new(big.Int).SetString(value, 2)
	if !ok {
		return "x"
	}
	switch format {
	case vcd.FormatBinary:
		return zeroPad(n.Text(2), width)
	case vcd.FormatDecimalSigned:
		half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		if n.Cmp(half) >= 0 {
			n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(width)))
		}
		return n.Text(10)
	case vcd.FormatDecimalUnsigned:
		return n.Text(10)
	case vcd.FormatHexUpper:
		return strings.ToUpper(zeroPad(n.Text(16), (width+3)/4))
	default: // FormatHexLower
		return zeroPad(n.Text(16), (width+3)/4)
	}
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
