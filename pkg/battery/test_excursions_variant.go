package battery

import "math"

// excursionVariantStates are the 18 states spec.md §4.13 examines.
var excursionVariantStates = []int{-9, -8, -7, -6, -5, -4, -3, -2, -1, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// randomExcursionsVariantKernel is spec.md §4.13: counts total visits
// to each of 18 states across all completed cycles of the partial-sum
// walk and compares each count to the expected J via a normal-tail
// p-value.
type randomExcursionsVariantKernel struct{}

func (randomExcursionsVariantKernel) Name() string        { return "RandomExcursionsVariant" }
func (randomExcursionsVariantKernel) Partitions() int     { return 18 }
func (randomExcursionsVariantKernel) NewScratch() Scratch { return nil }

func (randomExcursionsVariantKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N > 0
}

func (randomExcursionsVariantKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sums := bits.PartialSums()
	cycles := excursionCycles(sums)
	j := len(cycles)
	results := make([]float64, len(excursionVariantStates))
	if j < c.MinZeroCrossings {
		for i := range results {
			results[i] = NonPValue
		}
		return results
	}
	counts := map[int]int{}
	for _, cyc := range cycles {
		for _, v := range cyc {
			counts[v]++
		}
	}
	jf := float64(j)
	for i, x := range excursionVariantStates {
		xi := float64(counts[x])
		denom := math.Sqrt(2 * jf * (4*math.Abs(float64(x)) - 2))
		results[i] = erfc(math.Abs(xi-jf) / denom)
	}
	return results
}
