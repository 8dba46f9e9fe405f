package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVCD = `$scope module tb $end
$var wire 1 ! clock $end
$scope module dut $end
$var wire 8 @ count $end
$var wire 8 # state $end
$upscope $end
$upscope $end
$enddefinitions $end
#0
`

func writeTestVCD(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vcd")
	require.NoError(t, os.WriteFile(path, []byte(testVCD), 0644))
	return path
}

func TestMatchSignalPaths(t *testing.T) {
	t.Parallel()

	vcdFile := writeTestVCD(t)

	matched, err := matchSignalPaths(vcdFile, "tb/dut/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"tb/dut/count", "tb/dut/state"}, matched)

	matched, err = matchSignalPaths(vcdFile, "**")
	require.NoError(t, err)
	assert.Len(t, matched, 3)

	_, err = matchSignalPaths(vcdFile, "nothing/*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no signals match")
}

func TestMatchSignalPaths_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := matchSignalPaths(writeTestVCD(t), "[")
	require.Error(t, err)
}

func TestAppendUnique(t *testing.T) {
	t.Parallel()

	list := appendUnique([]string{"tb/clock"}, "tb/dut/count", "/tb/clock/", "tb/dut/count")
	assert.Equal(t, []string{"tb/clock", "tb/dut/count"}, list)
}
