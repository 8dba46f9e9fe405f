package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcdkit/vcd2image/internal/vcd"
)

func defs(t *testing.T, entries ...*vcd.SignalDef) *vcd.PathMap {
	t.Helper()
	paths := vcd.NewPathMap()
	for _, def := range entries {
		paths.Set(def.Path, def)
	}
	return paths
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	paths := defs(t,
		&vcd.SignalDef{Name: "clock", ID: "!", Width: 1, Path: "tb/clock"},
		&vcd.SignalDef{Name: "reset", ID: "@", Width: 1, Path: "tb/reset"},
		&vcd.SignalDef{Name: "enable", ID: "#", Width: 1, Path: "tb/enable"},
		&vcd.SignalDef{Name: "pulse_out", ID: "$", Width: 1, Path: "tb/pulse_out"},
		&vcd.SignalDef{Name: "count", ID: "%", Width: 8, Path: "tb/u_timer/count"},
	)

	category := New().Categorize(paths)

	assert.Equal(t, []string{"tb/clock"}, category.Clocks)
	assert.Equal(t, []string{"tb/reset"}, category.Resets)
	assert.Equal(t, []string{"tb/enable"}, category.Inputs)
	assert.Equal(t, []string{"tb/pulse_out"}, category.Outputs)
	assert.Equal(t, []string{"tb/u_timer/count"}, category.Internals)

	// categorization is recorded on the definitions
	assert.Equal(t, vcd.TypeClock, paths.Get("tb/clock").Type)
	assert.Equal(t, vcd.TypeInternal, paths.Get("tb/u_timer/count").Type)
}

func TestCategorize_WidthHeuristicAtTopLevel(t *testing.T) {
	t.Parallel()

	paths := defs(t,
		&vcd.SignalDef{Name: "sel", ID: "!", Width: 1, Path: "top/sel"},
		&vcd.SignalDef{Name: "bus", ID: "@", Width: 16, Path: "top/bus"},
	)
	category := New().Categorize(paths)
	assert.Equal(t, []string{"top/sel"}, category.Inputs)
	assert.Equal(t, []string{"top/bus"}, category.Outputs)
}

func TestCategory_PortsAndAll(t *testing.T) {
	t.Parallel()

	category := &Category{
		Clocks:  []string{"c"},
		Inputs:  []string{"a"},
		Outputs: []string{"b"},
	}
	assert.Equal(t, []string{"a", "b"}, category.Ports())
	assert.Equal(t, []string{"c", "a", "b"}, category.All())
}

func TestSuggestClock(t *testing.T) {
	t.Parallel()

	t.Run("prefers clocks deeper in the hierarchy", func(t *testing.T) {
		t.Parallel()
		categorizer := New()
		category := &Category{Clocks: []string{"tb/clk", "tb/dut/clk"}}
		assert.Equal(t, "tb/dut/clk", categorizer.SuggestClock(category))
	})

	t.Run("falls back to the first clock", func(t *testing.T) {
		t.Parallel()
		categorizer := New()
		category := &Category{Clocks: []string{"tb/clk"}}
		assert.Equal(t, "tb/clk", categorizer.SuggestClock(category))
	})

	t.Run("scans inputs when no clock bucket", func(t *testing.T) {
		t.Parallel()
		categorizer := New()
		category := &Category{Inputs: []string{"tb/enable", "tb/ck"}}
		assert.Equal(t, "tb/ck", categorizer.SuggestClock(category))
	})

	t.Run("empty without candidates", func(t *testing.T) {
		t.Parallel()
		categorizer := New()
		assert.Equal(t, "", categorizer.SuggestClock(&Category{}))
	})
}

func TestGroupByID_AliasesGroupTogether(t *testing.T) {
	t.Parallel()

	paths := defs(t,
		&vcd.SignalDef{Name: "clk", ID: "!", Width: 1, Path: "tb/clk"},
		&vcd.SignalDef{Name: "clk", ID: "!", Width: 1, Path: "tb/dut/clk"},
		&vcd.SignalDef{Name: "data", ID: "@", Width: 8, Path: "tb/data"},
	)

	groups := GroupByID(paths)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"tb/clk", "tb/dut/clk"}, groups["!"])
	assert.Equal(t, []string{"tb/data"}, groups["@"])
}
