package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGraphlikeModel(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1\nerror(0.2) D1 D2 L0\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{input})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "is graphlike")
}

func TestCheckHyperEdgeModel(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2\nerror(0.2) D0 D1\nerror(0.3) D1 D2 D3 D4\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "has 2 hyper-edge(s) at instruction(s) [0 2]")
}

func TestCheckJSON(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input})

	err := cmd.Execute()
	require.Error(t, err, "hyper-edges fail the check with exit code 1")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["graphlike"])
	assert.Equal(t, []interface{}{float64(0)}, data["violations"])
}

func TestCheckMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-file.dem"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
