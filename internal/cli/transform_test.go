package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeModel writes DEM text to a temp file and returns its path.
func writeModel(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.dem")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTransformHyperEdge(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2\n")
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✓ Decomposed 1/1 hyper-edge(s) into 2 edge(s) using 1 virtual detector(s)")
	assert.Contains(t, buf.String(), "Wrote: "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want := "error(0.05278640450004207) D0 D3\n" +
		"error(0.05278640450004207) D1 D2\n"
	assert.Equal(t, want, string(data))
}

func TestTransformAlreadyGraphlike(t *testing.T) {
	content := "error(0.25) D0 D1\n"
	input := writeModel(t, content)
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✓ Model is already graphlike, no hyper-edges found")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestTransformJSON(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2 D3\n")
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["run_id"])
	assert.Equal(t, float64(1), data["hyper_edges"])
	assert.Equal(t, float64(1), data["decomposed"])
	assert.Equal(t, float64(0), data["failed"])
	assert.Equal(t, float64(3), data["edges_added"])
	assert.Equal(t, float64(2), data["virtual_detectors"])

	report, ok := data["report"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, report["valid"])
}

func TestTransformVerbose(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2\n")
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text", Verbose: true})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.NoError(t, err)

	// Verbose diagnostics go to stderr so JSON output stays parseable.
	assert.Contains(t, errBuf.String(), "Parsed 1 event(s)")
	assert.Contains(t, errBuf.String(), "Decomposing hyper-edge at instruction 0: [0 1 2]")
}

func TestTransformMissingInput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-file.dem", "-o", output})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "model file not found")
}

func TestTransformParseError(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1\nerror(2) D0\n")
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ Failed to parse")
	assert.Contains(t, buf.String(), "PARSE_FAILED")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output file may be written for unparseable input")
}

func TestTransformParseErrorJSON(t *testing.T) {
	input := writeModel(t, "error(2) D0\n")
	output := filepath.Join(t.TempDir(), "out.dem")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "-o", output})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "1 parse error(s)")
}

func TestTransformRequiresOutputFlag(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1\n")

	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestTransformWithAuditDB(t *testing.T) {
	input := writeModel(t, "error(0.1) D0 D1 D2\n")
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "out.dem")
	auditDB := filepath.Join(tmpDir, "audit.db")

	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "-o", output, "--audit-db", auditDB})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, auditDB, data["audit_db"])

	_, err = os.Stat(auditDB)
	assert.NoError(t, err)
}
