package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePartitionUndefinedOnEmptySample(t *testing.T) {
	result := EvaluatePartition("Frequency", 0, []float64{NonPValue, NonPValue}, 0.01, 10, 0.0001)
	assert.Equal(t, DecisionUndefined, result.Decision)
	assert.Equal(t, 0, result.Sample)
}

func TestEvaluatePartitionPassedBothOnUniformSample(t *testing.T) {
	// A synthetic, exactly-uniform sample across 10 bins, 100 per bin,
	// with only the 12 lowest values below alpha (988 passes, inside the
	// proportion bounds), should pass both checks.
	pvalues := make([]float64, 0, 1000)
	for bin := 0; bin < 10; bin++ {
		base := float64(bin) / 10.0
		for i := 0; i < 100; i++ {
			pvalues = append(pvalues, base+0.001+float64(i)*0.0008)
		}
	}
	result := EvaluatePartition("Frequency", 0, pvalues, 0.01, 10, 0.0001)
	require.Equal(t, 1000, result.Sample)
	assert.Equal(t, DecisionPassedBoth, result.Decision)
}

func TestEvaluatePartitionFailedProportionOnLowPassCount(t *testing.T) {
	pvalues := make([]float64, 1000)
	for i := range pvalues {
		if i < 500 {
			pvalues[i] = 0.001 // below alpha, fails proportion
		} else {
			pvalues[i] = 0.5
		}
	}
	// bins=1 keeps the uniformity check trivially satisfied (a single
	// bin has zero chi-squared deviation by construction), isolating
	// the proportion failure.
	result := EvaluatePartition("Frequency", 0, pvalues, 0.01, 1, 0.0001)
	assert.Equal(t, DecisionFailedProportion, result.Decision)
}

func TestEvaluatePartitionExcursionFiltersNonPositive(t *testing.T) {
	pvalues := []float64{0, 0.5, 0.6, NonPValue, 0.7}
	result := EvaluatePartition("RandomExcursions", 0, pvalues, 0.01, 10, 0.0001)
	assert.Equal(t, 3, result.Sample)
}
