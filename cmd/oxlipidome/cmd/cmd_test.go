package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFAList = "FA,DB\nFA 16:0,0\nFA 18:2,2\nFA 20:3,3\n"

// resetFlags restores every flag to its default between command runs.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range []*cobra.Command{estimateCmd, validateCmd, summarizeCmd, configInitCmd, configShowCmd} {
		c.Flags().VisitAll(reset)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFAList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fas.csv")
	require.NoError(t, os.WriteFile(path, []byte(testFAList), 0o644))
	return path
}

func TestEstimateJSON(t *testing.T) {
	out, err := executeCommand(t, "estimate", "--fa-list", writeFAList(t), "--format", "json")
	require.NoError(t, err)

	var runs []map[string]any
	dec := json.NewDecoder(bytes.NewBufferString(out))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&runs))
	require.Len(t, runs, 1)

	assert.Equal(t, "bis-allylic", runs[0]["site"])
	assert.Equal(t, json.Number("100"), runs[0]["unoxidized_lipids"])
	assert.Equal(t, json.Number("36"), runs[0]["oxidized_fatty_acids"])
	assert.Equal(t, json.Number("1728"), runs[0]["oxidized_lipids_one_oxfa"])
	assert.Equal(t, json.Number("128379"), runs[0]["oxidized_lipids_all_oxfa"])
}

func TestEstimateAllModesStoresRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	out, err := executeCommand(t, "estimate", "--fa-list", writeFAList(t),
		"--all-modes", "--format", "json", "--db", dbPath)
	require.NoError(t, err)

	var runs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	assert.Len(t, runs, 6)
	assert.FileExists(t, dbPath)
}

func TestEstimateInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "estimate", "--fa-list", writeFAList(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--format table")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxlipidome.yaml")

	out, err := executeCommand(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	out, err = executeCommand(t, "validate", path, "--fa-list", writeFAList(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration OK")
	assert.Contains(t, out, "FAs: 3 (2 oxidizable)")
	assert.Contains(t, out, "Triacylglycerol=triacylglycerol")

	_, err = executeCommand(t, "config", "init", path)
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	out, err := executeCommand(t, "summarize", writeFAList(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 3 FAs, 2 oxidizable")
}
