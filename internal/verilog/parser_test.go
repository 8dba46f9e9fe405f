package verilog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModule = `// simple timer
module timer;
  parameter WIDTH = 8;
  parameter DELAY = 16'h00ff;

  input clock;
  input reset;
  input [7:0] threshold;
  output reg pulse;
  wire [3:0] state;
  reg [7:0] count;

endmodule
`

func TestParse(t *testing.T) {
	t.Parallel()

	module, err := Parse(sampleModule)
	require.NoError(t, err)
	assert.Equal(t, "timer", module.Name)

	assert.Equal(t, Port{Width: 1, Desc: "Input port"}, module.Inputs["clock"])
	assert.Equal(t, Port{Width: 1, Desc: "Input port"}, module.Inputs["reset"])
	assert.Equal(t, Port{Width: 8, Desc: "Input port"}, module.Inputs["threshold"])
	assert.Equal(t, Port{Width: 1, Desc: "Output port"}, module.Outputs["pulse"])
	assert.Equal(t, Port{Width: 4, Desc: "Wire"}, module.Wires["state"])
	assert.Equal(t, Port{Width: 8, Desc: "Register"}, module.Regs["count"])

	assert.Equal(t, "8", module.Parameters["WIDTH"])
	assert.Equal(t, "16'h00ff", module.Parameters["DELAY"])
}

func TestParse_NoModule(t *testing.T) {
	t.Parallel()

	_, err := Parse("wire a;\n")
	require.Error(t, err)
}

func TestModule_Lookup(t *testing.T) {
	t.Parallel()

	module, err := Parse(sampleModule)
	require.NoError(t, err)

	port, ok := module.Lookup("threshold")
	require.True(t, ok)
	assert.Equal(t, 8, port.Width)

	_, ok = module.Lookup("ghost")
	assert.False(t, ok)
}

func TestModule_Signals(t *testing.T) {
	t.Parallel()

	module, err := Parse(sampleModule)
	require.NoError(t, err)
	// "output reg pulse" is picked up as both an output and a register, so
	// pulse appears twice
	assert.Len(t, module.Signals(), 7)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer.v")
	require.NoError(t, os.WriteFile(path, []byte(sampleModule), 0644))

	module, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timer", module.Name)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.v"))
	require.Error(t, err)
}
