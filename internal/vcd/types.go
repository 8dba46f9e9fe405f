package vcd

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DisplayFormat selects how a multi-bit signal value is rendered in the
// WaveJSON data string.
type DisplayFormat int

const (
	// FormatHexLower is the default: zero-padded lowercase hex.
	FormatHexLower DisplayFormat = iota
	FormatHexUpper
	FormatBinary
	FormatDecimalSigned
	FormatDecimalUnsigned
)

// ParseDisplayFormat converts the single-character format code used on the
// command line ("b", "d", "u", "x", "X") into a DisplayFormat.
func ParseDisplayFormat(code string) (DisplayFormat, error) {
	switch code {
	case "b":
		return FormatBinary, nil
	case "d":
		return FormatDecimalSigned, nil
	case "u":
		return FormatDecimalUnsigned, nil
	case "x":
		return FormatHexLower, nil
	case "X":
		return FormatHexUpper, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
}

// String returns the single-character code for the format.
func (f DisplayFormat) String() string {
	switch f {
	case FormatBinary:
		return "b"
	case FormatDecimalSigned:
		return "d"
	case FormatDecimalUnsigned:
		return "u"
	case FormatHexUpper:
		return "X"
	default:
		return "x"
	}
}

// SignalType is the heuristic category a signal belongs to.
type SignalType int

const (
	TypeInternal SignalType = iota
	TypeClock
	TypeReset
	TypeInput
	TypeOutput
	TypeUnknown
)

func (t SignalType) String() string {
	switch t {
	case TypeClock:
		return "clock"
	case TypeReset:
		return "reset"
	case TypeInput:
		return "input"
	case TypeOutput:
		return "output"
	case TypeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// SignalDef describes one $var declaration from a VCD header.
//
// ID is the identifier code the dump section uses to reference the signal.
// Distinct hierarchical paths may share one ID (aliases of the same
// underlying variable), so anything that needs to deduplicate signals must
// group by ID, not by path.
type SignalDef struct {
	Name   string        // leaf name
	ID     string        // VCD identifier code, verbatim from the $var line
	Width  int           // bit width, 1 for scalars
	Path   string        // full hierarchical path, unique per entry
	Format DisplayFormat // display format for multi-bit values
	Type   SignalType    // set by the categorizer, TypeInternal until then
}

// PathMap is an ordered mapping from full hierarchical signal path to its
// definition. Iteration order is $var declaration order.
type PathMap struct {
	m *orderedmap.OrderedMap[string, *SignalDef]
}

// NewPathMap returns an empty PathMap.
func NewPathMap() *PathMap {
	return &PathMap{m: orderedmap.New[string, *SignalDef]()}
}

// Set inserts or replaces the definition for path.
func (p *PathMap) Set(path string, def *SignalDef) {
	p.m.Set(path, def)
}

// Get returns the definition for path, or nil if absent.
func (p *PathMap) Get(path string) *SignalDef {
	def, ok := p.m.Get(path)
	if !ok {
		return nil
	}
	return def
}

// Has reports whether path is present.
func (p *PathMap) Has(path string) bool {
	_, ok := p.m.Get(path)
	return ok
}

// Len returns the number of entries.
func (p *PathMap) Len() int {
	return p.m.Len()
}

// Paths returns all paths in insertion order.
func (p *PathMap) Paths() []string {
	paths := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Defs returns all definitions in insertion order.
func (p *PathMap) Defs() []*SignalDef {
	defs := make([]*SignalDef, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		defs = append(defs, pair.Value)
	}
	return defs
}
