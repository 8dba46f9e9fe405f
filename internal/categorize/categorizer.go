// Package categorize implements the name-pattern heuristic that sorts VCD
// signals into clock/reset/input/output/internal buckets and suggests a
// clock for sampling.
package categorize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vcdkit/vcd2image/internal/vcd"
)

// Category holds signal paths partitioned by heuristic type. Buckets are
// sorted for stable output.
type Category struct {
	Clocks    []string
	Resets    []string
	Inputs    []string
	Outputs   []string
	Internals []string
	Unknowns  []string
}

// Ports returns all input and output paths.
func (c *Category) Ports() []string {
	return append(append([]string{}, c.Inputs...), c.Outputs...)
}

// All returns every categorized path.
func (c *Category) All() []string {
	all := append([]string{}, c.Clocks...)
	all = append(all, c.Resets...)
	all = append(all, c.Inputs...)
	all = append(all, c.Outputs...)
	all = append(all, c.Internals...)
	return append(all, c.Unknowns...)
}

// Categorizer classifies signals by naming patterns and hierarchy depth.
type Categorizer struct {
	clockPatterns  []*regexp.Regexp
	resetPatterns  []*regexp.Regexp
	inputPatterns  []*regexp.Regexp
	outputPatterns []*regexp.Regexp

	// instance prefixes that mark a signal as internal to a submodule
	internalPrefixes []string

	// leaf-name fragments that mark testbench-level outputs
	outputIndicators []string
}

// New returns a categorizer with the default pattern set.
func New() *Categorizer {
	return &Categorizer{
		clockPatterns:    compileAll(`\bclock\b`, `\bclk\b`, `\bck\b`),
		resetPatterns:    compileAll(`\breset\b`, `\brst\b`, `\bclear\b`),
		inputPatterns:    compileAll(`\bin\b`, `\binput\b`, `\bi_\w+`),
		outputPatterns:   compileAll(`\bout\b`, `\boutput\b`, `\bo_\w+`),
		internalPrefixes: []string{"u_", "i_", "dut_", "tb_"},
		outputIndicators: []string{"pulse", "done", "ready", "valid", "out", "result"},
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// Categorize classifies every signal in paths, records the type on each
// definition, and returns the partitioned buckets.
func (c *Categorizer) Categorize(paths *vcd.PathMap) *Category {
	category := &Category{}
	for _, def := range paths.Defs() {
		def.Type = c.classify(def)
		switch def.Type {
		case vcd.TypeClock:
			category.Clocks = append(category.Clocks, def.Path)
		case vcd.TypeReset:
			category.Resets = append(category.Resets, def.Path)
		case vcd.TypeInput:
			category.Inputs = append(category.Inputs, def.Path)
		case vcd.TypeOutput:
			category.Outputs = append(category.Outputs, def.Path)
		case vcd.TypeInternal:
			category.Internals = append(category.Internals, def.Path)
		default:
			category.Unknowns = append(category.Unknowns, def.Path)
		}
	}
	sort.Strings(category.Clocks)
	sort.Strings(category.Resets)
	sort.Strings(category.Inputs)
	sort.Strings(category.Outputs)
	sort.Strings(category.Internals)
	sort.Strings(category.Unknowns)
	return category
}

func (c *Categorizer) classify(def *vcd.SignalDef) vcd.SignalType {
	name := strings.ToLower(def.Name)

	if matchesAny(name, c.clockPatterns) {
		return vcd.TypeClock
	}
	if matchesAny(name, c.resetPatterns) {
		return vcd.TypeReset
	}
	if matchesAny(name, c.inputPatterns) {
		return vcd.TypeInput
	}
	if matchesAny(name, c.outputPatterns) {
		return vcd.TypeOutput
	}

	parts := strings.Split(def.Path, "/")

	// instance-prefixed signals below the top level are internal wiring
	if len(parts) > 2 {
		for _, part := range parts[1:] {
			for _, prefix := range c.internalPrefixes {
				if strings.HasPrefix(part, prefix) {
					return vcd.TypeInternal
				}
			}
		}
	}

	// testbench-level signals: guess direction from common names and width
	if len(parts) <= 2 || strings.HasPrefix(parts[0], "tb_") {
		for _, indicator := range c.outputIndicators {
			if strings.Contains(name, indicator) {
				return vcd.TypeOutput
			}
		}
		if def.Width == 1 {
			return vcd.TypeInput
		}
		return vcd.TypeOutput
	}

	if len(parts) > 2 {
		return vcd.TypeInternal
	}
	if def.Width == 1 {
		return vcd.TypeInput
	}
	return vcd.TypeOutput
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// SuggestClock picks the most plausible clock path, preferring clocks deeper
// in the hierarchy over testbench-level ones. It returns "" when no clock
// candidate exists.
func (c *Categorizer) SuggestClock(category *Category) string {
	if len(category.Clocks) == 0 {
		for _, path := range category.Inputs {
			leaf := path[strings.LastIndex(path, "/")+1:]
			if matchesAny(strings.ToLower(leaf), c.clockPatterns) {
				return path
			}
		}
		return ""
	}
	for _, path := range category.Clocks {
		if strings.Count(path, "/") >= 2 {
			return path
		}
	}
	return category.Clocks[0]
}

// GroupByID groups signal paths by identifier code, in declaration order.
// Multiple paths under one code are hierarchical aliases of the same
// underlying variable.
func GroupByID(paths *vcd.PathMap) map[string][]string {
	groups := make(map[string][]string)
	for _, def := range paths.Defs() {
		groups[def.ID] = append(groups[def.ID], def.Path)
	}
	return groups
}
