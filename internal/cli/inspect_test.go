package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defkit/astgen/internal/ir"
	"github.com/defkit/astgen/internal/testutil"
)

func TestInspectText(t *testing.T) {
	path := writeDefinitions(t, testutil.SampleDefinitions())

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "2 struct(s), 1 enum(s), 2 token(s)")
	assert.Contains(t, output, "struct ExprBinary (3)")
	assert.Contains(t, output, "struct ExprCall (4) features=[full]")
	assert.Contains(t, output, "enum   Expr (3)")
	assert.Contains(t, output, "fingerprint: ")
}

func TestInspectJSON(t *testing.T) {
	path := writeDefinitions(t, testutil.SampleDefinitions())

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string         `json:"status"`
		Data   InspectSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Structs)
	assert.Equal(t, 1, resp.Data.Enums)
	assert.Equal(t, 2, resp.Data.Tokens)
	assert.Len(t, resp.Data.Fingerprint, 64)
	require.Len(t, resp.Data.Nodes, 3)
	assert.Equal(t, "ExprBinary", resp.Data.Nodes[0].Ident)
}

func TestInspectFingerprintMatchesIR(t *testing.T) {
	defs := testutil.SampleDefinitions()
	path := writeDefinitions(t, defs)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Data InspectSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	// The reported fingerprint is the IR's own content address, so a
	// byte-identical document always inspects to the same identity.
	want, err := ir.Fingerprint(defs)
	require.NoError(t, err)
	assert.Equal(t, want, resp.Data.Fingerprint)
}

func TestInspectMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}
