package battery

import "math"

// cusumKernel is spec.md §4.3: the two-sided cumulative sums test,
// run once forward and once in reverse, emitting one p-value each.
type cusumKernel struct{}

func (cusumKernel) Name() string        { return "CumulativeSums" }
func (cusumKernel) Partitions() int     { return 2 }
func (cusumKernel) NewScratch() Scratch { return nil }

func (cusumKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N > 0
}

func (cusumKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	n := bits.Len()
	zFwd := cusumMaxExcursion(bits, n, false)
	zRev := cusumMaxExcursion(bits, n, true)
	return []float64{cusumPValue(zFwd, n), cusumPValue(zRev, n)}
}

func cusumMaxExcursion(bits BitView, n int, reverse bool) float64 {
	acc := 0
	max := 0
	for k := 0; k < n; k++ {
		idx := k
		if reverse {
			idx = n - 1 - k
		}
		acc += bits.Signed(idx)
		if a := absInt(acc); a > max {
			max = a
		}
	}
	return float64(max)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cusumPValue implements the closed-form series from spec.md §4.3
// (equivalently SP 800-22's CumulativeSums formula).
func cusumPValue(z float64, n int) float64 {
	if z == 0 {
		return 1.0
	}
	nf := float64(n)
	sqrtN := math.Sqrt(nf)

	sum1 := 0.0
	lo1 := int(math.Floor((-nf/z + 1) / 4))
	hi1 := int(math.Floor((nf/z - 1) / 4))
	for k := lo1; k <= hi1; k++ {
		kf := float64(k)
		sum1 += normalCDF((4*kf+1)*z/sqrtN) - normalCDF((4*kf-1)*z/sqrtN)
	}

	sum2 := 0.0
	lo2 := int(math.Floor((-nf/z - 3) / 4))
	hi2 := int(math.Floor((nf/z - 1) / 4))
	for k := lo2; k <= hi2; k++ {
		kf := float64(k)
		sum2 += normalCDF((4*kf+3)*z/sqrtN) - normalCDF((4*kf+1)*z/sqrtN)
	}

	p := 1 - sum1 + sum2
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
