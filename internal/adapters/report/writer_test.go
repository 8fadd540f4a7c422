package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourcewizard-ai/bdep/internal/adapters/report"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := report.NewWriter(path)
	require.True(t, w.Enabled())

	result := domain.RunResult{Outcomes: map[string]domain.BuildOutcome{
		"core": domain.OutcomeBuilt,
		"lib":  domain.OutcomeSkippedUnchanged,
		"docs": domain.OutcomeSkippedNoBuildStep,
		"app":  domain.OutcomeFailed,
	}}
	require.NoError(t, w.Write(result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestWriter_Write_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bdep", "reports", "run.json")
	w := report.NewWriter(path)

	require.NoError(t, w.Write(domain.RunResult{Outcomes: map[string]domain.BuildOutcome{}}))
	assert.FileExists(t, path)
}

func TestWriter_Write_OverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := report.NewWriter(path)

	require.NoError(t, w.Write(domain.RunResult{Outcomes: map[string]domain.BuildOutcome{
		"core": domain.OutcomeFailed,
	}}))
	require.NoError(t, w.Write(domain.RunResult{Outcomes: map[string]domain.BuildOutcome{
		"core": domain.OutcomeBuilt,
	}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.OutcomeBuilt, decoded.Outcomes["core"])
}

func TestWriter_EmptyPathDisablesWrites(t *testing.T) {
	w := report.NewWriter("")
	assert.False(t, w.Enabled())
	require.NoError(t, w.Write(domain.RunResult{Outcomes: map[string]domain.BuildOutcome{
		"core": domain.OutcomeBuilt,
	}}))
}
