package vcd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = `$date today $end
$timescale 1ns $end
$scope module top $end
$var wire 1 ! clock $end
$scope module dut $end
$var wire 8 " data $end
$upscope $end
$var wire 1 # reset $end
$upscope $end
$enddefinitions $end
`

func TestParseHeader(t *testing.T) {
	t.Parallel()

	paths, err := ParseHeader(strings.NewReader(sampleHeader))
	require.NoError(t, err)

	require.Equal(t, 3, paths.Len())
	assert.Equal(t, []string{"top/clock", "top/dut/data", "top/reset"}, paths.Paths())

	clock := paths.Get("top/clock")
	require.NotNil(t, clock)
	assert.Equal(t, "clock", clock.Name)
	assert.Equal(t, "!", clock.ID)
	assert.Equal(t, 1, clock.Width)

	data := paths.Get("top/dut/data")
	require.NotNil(t, data)
	assert.Equal(t, `"`, data.ID)
	assert.Equal(t, 8, data.Width)
	assert.Equal(t, FormatHexLower, data.Format)

	// path round-trip: every key equals its definition's path
	for _, def := range paths.Defs() {
		assert.Equal(t, def.Path, paths.Get(def.Path).Path)
		assert.NotEmpty(t, def.ID)
	}
}

func TestParseHeader_MissingEnddefinitions(t *testing.T) {
	t.Parallel()

	header := "$scope module top $end\n$var wire 1 ! clock $end\n"
	_, err := ParseHeader(strings.NewReader(header))
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParseHeader_SkipsBlankAndUnknownLines(t *testing.T) {
	t.Parallel()

	header := "\n$comment generated $end\n\n$var wire 4 % count $end\n$enddefinitions $end\n"
	paths, err := ParseHeader(strings.NewReader(header))
	require.NoError(t, err)
	require.Equal(t, 1, paths.Len())
	assert.Equal(t, "count", paths.Get("count").Name)
}

func TestParseHeader_ToleratesUnbalancedUpscope(t *testing.T) {
	t.Parallel()

	header := "$upscope $end\n$upscope $end\n$var wire 1 ! sig $end\n$enddefinitions $end\n"
	paths, err := ParseHeader(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, []string{"sig"}, paths.Paths())
}

func TestParseHeader_DuplicatePathOverwrites(t *testing.T) {
	t.Parallel()

	header := "$scope module top $end\n" +
		"$var wire 1 ! sig $end\n" +
		"$var wire 4 @ sig $end\n" +
		"$enddefinitions $end\n"
	paths, err := ParseHeader(strings.NewReader(header))
	require.NoError(t, err)
	require.Equal(t, 1, paths.Len())
	assert.Equal(t, "@", paths.Get("top/sig").ID)
	assert.Equal(t, 4, paths.Get("top/sig").Width)
}

func TestParseHeader_AliasedIdentifierCodes(t *testing.T) {
	t.Parallel()

	// the same variable bound in two scopes shares one identifier code
	header := "$scope module top $end\n" +
		"$var wire 1 ! clk $end\n" +
		"$scope module dut $end\n" +
		"$var wire 1 ! clk $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$enddefinitions $end\n"
	paths, err := ParseHeader(strings.NewReader(header))
	require.NoError(t, err)
	require.Equal(t, 2, paths.Len())
	assert.Equal(t, paths.Get("top/clk").ID, paths.Get("top/dut/clk").ID)
}

func TestParseHeader_ScopeNestingDepth(t *testing.T) {
	t.Parallel()

	header := "$scope module a $end\n" +
		"$scope module b $end\n" +
		"$scope module c $end\n" +
		"$var wire 1 ! deep $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$var wire 1 @ shallow $end\n" +
		"$enddefinitions $end\n"
	paths, err := ParseHeader(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/c/deep", "shallow"}, paths.Paths())
}

func TestFilterPaths(t *testing.T) {
	t.Parallel()

	all, err := ParseHeader(strings.NewReader(sampleHeader))
	require.NoError(t, err)

	t.Run("keeps exactly the requested paths in order", func(t *testing.T) {
		t.Parallel()
		filtered, err := FilterPaths(all, []string{"top/reset", "top/clock"})
		require.NoError(t, err)
		assert.Equal(t, []string{"top/reset", "top/clock"}, filtered.Paths())
	})

	t.Run("normalizes separator characters", func(t *testing.T) {
		t.Parallel()
		filtered, err := FilterPaths(all, []string{"/top/clock/"})
		require.NoError(t, err)
		require.Equal(t, 1, filtered.Len())
		assert.NotNil(t, filtered.Get("top/clock"))
	})

	t.Run("missing path fails naming it", func(t *testing.T) {
		t.Parallel()
		_, err := FilterPaths(all, []string{"top/clock", "top/nope"})
		require.ErrorIs(t, err, ErrSignalNotFound)
		assert.Contains(t, err.Error(), "top/nope")
	})
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "top/clock", NormalizePath("/top/clock/"))
	assert.Equal(t, "top/clock", NormalizePath("top/clock"))
	assert.Equal(t, "", NormalizePath("//"))
}

func TestParseDisplayFormat(t *testing.T) {
	t.Parallel()

	for code, want := range map[string]DisplayFormat{
		"b": FormatBinary,
		"d": FormatDecimalSigned,
		"u": FormatDecimalUnsigned,
		"x": FormatHexLower,
		"X": FormatHexUpper,
	} {
		got, err := ParseDisplayFormat(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, code, got.String())
	}

	_, err := ParseDisplayFormat("q")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
