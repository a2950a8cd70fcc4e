package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsInvalidParameters(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 0
	_, err := Run(params, constSource{pattern: alternatingBits(100)}, nil)
	assert.Error(t, err)
}

func TestRunProducesReportWithRunID(t *testing.T) {
	params := DefaultTestParameters()
	params.Iterations = 3
	params.Workers = 2

	report, err := Run(params, constSource{pattern: alternatingBits(params.N)}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.EnabledTests)
	assert.NotEmpty(t, report.Results)
	assert.GreaterOrEqual(t, report.OverallPassRate(), 0.0)
}
