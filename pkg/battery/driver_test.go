package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always serves the same fixed bit pattern, for
// deterministic driver tests that don't care about a specific kernel's
// statistics.
type constSource struct {
	pattern []byte
}

func (s constSource) ReadIteration(iteration, n int, out []byte) error {
	copy(out, s.pattern)
	return nil
}

// countingKernel is a minimal Kernel used to exercise Driver's
// lifecycle without depending on any real NIST statistic.
type countingKernel struct {
	enabled bool
	calls   int
}

func (k *countingKernel) Name() string      { return "Counting" }
func (k *countingKernel) Partitions() int   { return 1 }
func (k *countingKernel) NewScratch() Scratch { return nil }
func (k *countingKernel) Init(p TestParameters, c TestConstants) bool { return k.enabled }
func (k *countingKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	k.calls++
	return []float64{0.5}
}

func TestDriverInitDisablesRejectingKernel(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 100
	params.Iterations = 2
	params.Workers = 1

	rejecting := &countingKernel{enabled: false}
	accepting := &countingKernel{enabled: true}
	driver := NewDriver(params, []Kernel{rejecting, accepting}, constSource{pattern: alternatingBits(100)}, nil)
	require.NoError(t, driver.Init([]Kernel{rejecting, accepting}))

	names := driver.EnabledTests()
	assert.Equal(t, []string{"Counting"}, names)
}

func TestDriverInitErrorsWhenAllKernelsDisabled(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 100
	params.Iterations = 1
	params.Workers = 1

	rejecting := &countingKernel{enabled: false}
	driver := NewDriver(params, []Kernel{rejecting}, constSource{pattern: alternatingBits(100)}, nil)
	assert.Error(t, driver.Init([]Kernel{rejecting}))
}

func TestDriverIterateAndMetrics(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 100
	params.Iterations = 20
	params.Workers = 4
	params.UniformityBins = 2

	k := &countingKernel{enabled: true}
	driver := NewDriver(params, []Kernel{k}, constSource{pattern: alternatingBits(100)}, nil)
	require.NoError(t, driver.Init([]Kernel{k}))
	require.NoError(t, driver.Iterate())
	assert.Equal(t, 20, k.calls)

	results := driver.Metrics()
	require.Len(t, results, 1)
	assert.Equal(t, "Counting", results[0].TestName)
	assert.Equal(t, 20, results[0].Sample)

	driver.Destroy()
}
