package battery

import "math"

// runsKernel is spec.md §4.4: counts the number of runs (maximal
// constant subsequences) against the expectation under a fixed
// ones-proportion pi, but only once pi is close enough to 1/2 that the
// test is meaningful.
type runsKernel struct{}

func (runsKernel) Name() string        { return "Runs" }
func (runsKernel) Partitions() int     { return 1 }
func (runsKernel) NewScratch() Scratch { return nil }

func (runsKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N >= 100
}

func (runsKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	n := bits.Len()
	pi := float64(bits.Ones()) / float64(n)
	if math.Abs(pi-0.5) >= 2/c.SqrtN {
		return []float64{NonPValue}
	}
	vn := 1
	for k := 1; k < n; k++ {
		if bits.At(k) != bits.At(k-1) {
			vn++
		}
	}
	num := math.Abs(float64(vn) - 2*float64(n)*pi*(1-pi))
	den := 2 * math.Sqrt(2*float64(n)) * pi * (1 - pi)
	return []float64{erfc(num / den)}
}
