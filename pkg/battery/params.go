// Package battery implements the NIST SP 800-22 Rev 1a statistical
// randomness test battery: fifteen test kernels, a per-iteration driver,
// and a metrics engine that aggregates p-values into pass/fail decisions.
package battery

import (
	"fmt"
	"math"
)

// NonPValue marks an iteration in which a test declined to produce a
// p-value (precondition not met). Never a valid probability, so it can
// never be confused with a real result.
const NonPValue = -1.0

// TestParameters is the single immutable configuration struct read by
// every kernel. It is fixed at run start and never mutated afterward.
type TestParameters struct {
	N          int `yaml:"n" json:"n"`
	Iterations int `yaml:"iterations" json:"iterations"`

	BlockFrequencyBlockLength      int `yaml:"block_frequency_block_length" json:"block_frequency_block_length"`
	NonOverlappingTemplateLength   int `yaml:"non_overlapping_template_length" json:"non_overlapping_template_length"`
	OverlappingTemplateLength      int `yaml:"overlapping_template_length" json:"overlapping_template_length"`
	ApproximateEntropyBlockLength  int `yaml:"approximate_entropy_block_length" json:"approximate_entropy_block_length"`
	SerialBlockLength              int `yaml:"serial_block_length" json:"serial_block_length"`
	LinearComplexitySequenceLength int `yaml:"linear_complexity_sequence_length" json:"linear_complexity_sequence_length"`

	UniformityBins  int     `yaml:"uniformity_bins" json:"uniformity_bins"`
	UniformityLevel float64 `yaml:"uniformity_level" json:"uniformity_level"`
	Alpha           float64 `yaml:"alpha" json:"alpha"`

	// Workers bounds the iteration worker pool (ambient, not part of the
	// reference parameter set, but needed to drive pkg/battery.Run).
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultTestParameters returns the parameter set spec.md §3 names as
// defaults. Callers override individual fields (directly, or via
// pkg/config's YAML loader) before calling Validate.
func DefaultTestParameters() TestParameters {
	return TestParameters{
		N:                              1000000,
		Iterations:                     100,
		BlockFrequencyBlockLength:      128,
		NonOverlappingTemplateLength:   9,
		OverlappingTemplateLength:      9,
		ApproximateEntropyBlockLength:  10,
		SerialBlockLength:              16,
		LinearComplexitySequenceLength: 500,
		UniformityBins:                 10,
		UniformityLevel:                1e-4,
		Alpha:                          0.01,
		Workers:                        4,
	}
}

// Validate enforces the invariants spec.md §3 states for TestParameters.
// It returns the first violation found; callers treat this as a fatal
// configuration error (spec.md §7).
func (p TestParameters) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("battery: n must be positive, got %d", p.N)
	}
	if p.N < 1000 {
		return fmt.Errorf("battery: n must be >= 1000, got %d", p.N)
	}
	if p.Iterations <= 0 {
		return fmt.Errorf("battery: iterations must be positive, got %d", p.Iterations)
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return fmt.Errorf("battery: alpha must be in (0,1), got %v", p.Alpha)
	}
	if p.UniformityBins < 2 {
		return fmt.Errorf("battery: uniformity_bins must be >= 2, got %d", p.UniformityBins)
	}
	if p.BlockFrequencyBlockLength < 20 {
		return fmt.Errorf("battery: block_frequency_block_length must be >= 20, got %d", p.BlockFrequencyBlockLength)
	}
	if float64(p.BlockFrequencyBlockLength) < 0.01*float64(p.N) {
		return fmt.Errorf("battery: block_frequency_block_length must be >= 0.01*n")
	}
	if p.NonOverlappingTemplateLength < 8 || p.NonOverlappingTemplateLength > 15 {
		return fmt.Errorf("battery: non_overlapping_template_length must be in [8,15], got %d", p.NonOverlappingTemplateLength)
	}
	if p.OverlappingTemplateLength < 8 || p.OverlappingTemplateLength > 15 {
		return fmt.Errorf("battery: overlapping_template_length must be in [8,15], got %d", p.OverlappingTemplateLength)
	}
	if p.ApproximateEntropyBlockLength <= 0 {
		return fmt.Errorf("battery: approximate_entropy_block_length must be positive, got %d", p.ApproximateEntropyBlockLength)
	}
	if p.SerialBlockLength <= 0 {
		return fmt.Errorf("battery: serial_block_length must be positive, got %d", p.SerialBlockLength)
	}
	if maxM := int(math.Log2(float64(p.N))) - 2; p.SerialBlockLength >= maxM {
		return fmt.Errorf("battery: serial_block_length must be < floor(log2(n))-2 = %d, got %d", maxM, p.SerialBlockLength)
	}
	if p.LinearComplexitySequenceLength < 500 || p.LinearComplexitySequenceLength > 5000 {
		return fmt.Errorf("battery: linear_complexity_sequence_length must be in [500,5000], got %d", p.LinearComplexitySequenceLength)
	}
	if p.N/p.LinearComplexitySequenceLength < 200 {
		return fmt.Errorf("battery: linear complexity needs N=n/M >= 200, got %d", p.N/p.LinearComplexitySequenceLength)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("battery: workers must be positive, got %d", p.Workers)
	}
	return nil
}

// TestConstants holds values derived from TestParameters once at init
// time and shared read-only across every worker and kernel.
type TestConstants struct {
	SqrtN             float64
	LogN              float64
	MinZeroCrossings  int
}

// NewTestConstants derives TestConstants from p. p is assumed valid
// (Validate has already been called).
func NewTestConstants(p TestParameters) TestConstants {
	n := float64(p.N)
	minCross := int(math.Ceil(0.005 * math.Sqrt(n)))
	if minCross < 500 {
		minCross = 500
	}
	return TestConstants{
		SqrtN:            math.Sqrt(n),
		LogN:             math.Log(n),
		MinZeroCrossings: minCross,
	}
}
