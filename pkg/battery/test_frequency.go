package battery

import "math"

// frequencyKernel is spec.md §4.1: the simplest test, a sum of ±1 over
// the whole sequence compared against its expected scale under
// randomness.
type frequencyKernel struct{}

func (frequencyKernel) Name() string      { return "Frequency" }
func (frequencyKernel) Partitions() int   { return 1 }
func (frequencyKernel) NewScratch() Scratch { return nil }

func (frequencyKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N >= 100
}

func (frequencyKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sum := 0
	for i := 0; i < bits.Len(); i++ {
		sum += bits.Signed(i)
	}
	sObs := math.Abs(float64(sum)) / c.SqrtN
	return []float64{erfc(sObs / sqrt2)}
}
