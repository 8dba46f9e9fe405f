// Package extract ties the VCD header parser, the dump sampler and the
// WaveJSON generator into one extraction pipeline.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vcdkit/vcd2image/internal/vcd"
	"github.com/vcdkit/vcd2image/internal/wavejson"
)

// Default sampling parameters.
const (
	DefaultWaveChunk = 20
	DefaultStartTime = 0
	DefaultEndTime   = 0
)

// Extractor extracts signal values from a VCD file and writes them in
// WaveJSON format. The first path of the path list is treated as the clock.
//
// Sampling parameters may be adjusted between New and Execute. The core
// performs no logging; progress is reported through the optional Progress
// reporter.
type Extractor struct {
	WaveChunk int
	StartTime uint64
	EndTime   uint64
	Policy    vcd.SamplingPolicy
	Progress  ProgressReporter

	vcdFile  string
	jsonFile string // empty string means standard output
	pathList []string
	paths    *vcd.PathMap
}

// New parses the VCD header of vcdFile and returns an extractor for the
// requested signal paths (separator characters are trimmed from each). An
// empty pathList selects every declared signal, in declaration order. A
// requested path missing from the header fails with vcd.ErrSignalNotFound.
func New(vcdFile, jsonFile string, pathList []string) (*Extractor, error) {
	f, err := os.Open(vcdFile)
	if err != nil {
		return nil, fmt.Errorf("opening VCD file: %w", err)
	}
	defer f.Close()

	all, err := vcd.ParseHeader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", vcdFile, err)
	}

	e := &Extractor{
		WaveChunk: DefaultWaveChunk,
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		Progress:  NopReporter{},
		vcdFile:   vcdFile,
		jsonFile:  jsonFile,
	}

	if len(pathList) == 0 {
		e.paths = all
		e.pathList = all.Paths()
		return e, nil
	}

	normalized := make([]string, len(pathList))
	for i, path := range pathList {
		normalized[i] = vcd.NormalizePath(path)
	}
	filtered, err := vcd.FilterPaths(all, normalized)
	if err != nil {
		return nil, err
	}
	e.paths = filtered
	e.pathList = normalized
	return e, nil
}

// PathList returns the effective signal path list, clock first.
func (e *Extractor) PathList() []string {
	return e.pathList
}

// Paths returns the resolved path → definition mapping.
func (e *Extractor) Paths() *vcd.PathMap {
	return e.paths
}

// SetFormat sets the display format of one multi-bit signal. The path must
// be present in the resolved mapping.
func (e *Extractor) SetFormat(path string, format vcd.DisplayFormat) error {
	def := e.paths.Get(vcd.NormalizePath(path))
	if def == nil {
		return fmt.Errorf("%w: %s", vcd.ErrSignalNotFound, path)
	}
	def.Format = format
	return nil
}

// Describe writes the extractor's properties in a human-readable form.
func (e *Extractor) Describe(w io.Writer) {
	fmt.Fprintf(w, "vcd_file   = %q\n", e.vcdFile)
	fmt.Fprintf(w, "json_file  = %q\n", e.jsonFile)
	fmt.Fprintf(w, "path_list  = [%s]\n", strings.Join(e.pathList, ",\n              "))
	fmt.Fprintf(w, "wave_chunk = %d\n", e.WaveChunk)
	fmt.Fprintf(w, "start_time = %d\n", e.StartTime)
	fmt.Fprintf(w, "end_time   = %d\n", e.EndTime)
	fmt.Fprintf(w, "policy     = %s\n", e.Policy)
}

// Execute samples the VCD dump section and writes the WaveJSON document to
// the configured target. It returns false (with a nil error) when the dump
// held no qualifying timestamps and nothing was written; all other failure
// modes are errors.
func (e *Extractor) Execute() (bool, error) {
	if e.paths.Len() == 0 {
		return false, vcd.ErrNoSignals
	}

	f, err := os.Open(e.vcdFile)
	if err != nil {
		return false, fmt.Errorf("opening VCD file: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		e.Progress.OnSampleStart(info.Size())
	}

	br := bufio.NewReader(&countingReader{r: f, reporter: e.Progress})
	if err := skipDefinitions(br); err != nil {
		return false, err
	}

	sampler := &vcd.Sampler{
		WaveChunk: e.WaveChunk,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Policy:    e.Policy,
	}
	clockID := e.paths.Get(e.pathList[0]).ID
	ids := make([]string, 0, len(e.pathList))
	for _, path := range e.pathList {
		ids = append(ids, e.paths.Get(path).ID)
	}

	groups, err := sampler.Sample(br, clockID, ids)
	if err != nil {
		return false, err
	}
	e.Progress.OnSampleDone(len(groups))
	if len(groups) == 0 {
		return false, nil
	}

	gen, err := wavejson.NewGenerator(e.pathList, e.paths, e.WaveChunk)
	if err != nil {
		return false, err
	}
	if err := e.writeOutput(gen.Generate(groups)); err != nil {
		return false, err
	}
	return true, nil
}

// skipDefinitions advances the reader past the $enddefinitions line.
func skipDefinitions(br *bufio.Reader) error {
	for {
		line, err := br.ReadString('\n')
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == "$enddefinitions" {
			return nil
		}
		if err == io.EOF {
			return fmt.Errorf("%w: missing $enddefinitions", vcd.ErrMalformedHeader)
		}
		if err != nil {
			return fmt.Errorf("reading VCD file: %w", err)
		}
	}
}

// writeOutput writes the document to the output file via a temp file and
// rename, or to stdout when no file was configured.
func (e *Extractor) writeOutput(doc string) error {
	if e.jsonFile == "" {
		_, err := io.WriteString(os.Stdout, doc)
		return err
	}
	e.Progress.OnWrite(e.jsonFile)

	dir := filepath.Dir(e.jsonFile)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(e.jsonFile), uuid.NewString()))
	if err := os.WriteFile(tmp, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing WaveJSON temp file: %w", err)
	}
	if err := os.Rename(tmp, e.jsonFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming WaveJSON file: %w", err)
	}
	return nil
}

// countingReader reports cumulative bytes read to the progress reporter.
type countingReader struct {
	r        io.Reader
	reporter ProgressReporter
	read     int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.read += int64(n)
		c.reporter.OnSampleProgress(c.read)
	}
	return n, err
}
