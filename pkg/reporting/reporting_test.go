package reporting

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhkimqd/sts-battery/pkg/battery"
)

func sampleReport() *battery.RunReport {
	return &battery.RunReport{
		RunID:      "run-1",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Params: battery.TestParameters{
			N:          1000000,
			Iterations: 100,
			Alpha:      0.01,
		},
		EnabledTests: []string{"Frequency", "Runs"},
		Results: []battery.MetricResult{
			{TestName: "Frequency", Partition: 0, Sample: 100, PassCount: 99, UniformityP: 0.5, Decision: battery.DecisionPassedBoth},
			{TestName: "Runs", Partition: 0, Sample: 100, PassCount: 97, UniformityP: 0.2, Decision: battery.DecisionPassedBoth},
		},
	}
}

func TestStorageSaveListLoadFindByRunID(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Format: LogFormatText, Output: os.Stdout})
	dir := t.TempDir()
	storage, err := NewStorage(dir, 10, logger)
	require.NoError(t, err)

	report := sampleReport()
	path, err := storage.SaveReport(report)
	require.NoError(t, err)
	assert.FileExists(t, path)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "run-1", summaries[0].RunID)

	loaded, err := storage.FindReportByRunID("run-1")
	require.NoError(t, err)
	assert.Equal(t, report.RunID, loaded.RunID)
	assert.Len(t, loaded.Results, 2)
}

func TestStorageCleanupKeepsOnlyLastN(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Format: LogFormatText, Output: os.Stdout})
	dir := t.TempDir()
	storage, err := NewStorage(dir, 1, logger)
	require.NoError(t, err)

	first := sampleReport()
	first.RunID = "run-older"
	first.StartedAt = time.Now().Add(-time.Hour)
	_, err = storage.SaveReport(first)
	require.NoError(t, err)

	second := sampleReport()
	second.RunID = "run-newer"
	second.StartedAt = time.Now()
	_, err = storage.SaveReport(second)
	require.NoError(t, err)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "run-newer", summaries[0].RunID)
}

func TestFormatterWriteFinalAnalysisReport(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Format: LogFormatText, Output: os.Stdout})
	formatter := NewFormatter(logger)

	var buf bytes.Buffer
	require.NoError(t, formatter.WriteFinalAnalysisReport(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Frequency")
	assert.Contains(t, out, "Runs")
	assert.Contains(t, out, "PASSED_BOTH")
}

func TestFormatterWriteResultsFile(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Format: LogFormatText, Output: os.Stdout})
	formatter := NewFormatter(logger)

	dir := t.TempDir()
	path := dir + "/results.txt"
	require.NoError(t, formatter.WriteResultsFile(path, []float64{0.5, battery.NonPValue, 0.123456}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0.500000")
	assert.Contains(t, string(data), "NON_P_VALUE")
}
