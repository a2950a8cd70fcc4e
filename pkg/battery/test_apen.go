package battery

import "math"

// apEnKernel is spec.md §4.11: approximate entropy, comparing the
// frequency of overlapping m-bit and (m+1)-bit windows (sequence
// treated as cyclic by wrapping the first r-1 bits to the end).
type apEnKernel struct {
	m int
}

// apEnScratch holds the two cyclic-window frequency tables, sized to
// the kernel's fixed block length m and reused across iterations.
type apEnScratch struct {
	countsM, countsM1 []int
}

func (k *apEnKernel) Name() string    { return "ApproximateEntropy" }
func (k *apEnKernel) Partitions() int { return 1 }

func (k *apEnKernel) NewScratch() Scratch {
	return &apEnScratch{
		countsM:  make([]int, 1<<uint(k.m)),
		countsM1: make([]int, 1<<uint(k.m+1)),
	}
}

func (k *apEnKernel) Init(p TestParameters, c TestConstants) bool {
	k.m = p.ApproximateEntropyBlockLength
	return k.m > 0 && p.N > 0
}

func (k *apEnKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sc := s.(*apEnScratch)
	n := bits.Len()
	phiM := apEnPhi(bits, n, k.m, sc.countsM)
	phiM1 := apEnPhi(bits, n, k.m+1, sc.countsM1)
	apEn := phiM - phiM1
	chi2 := 2 * float64(n) * (ln2 - apEn)
	return []float64{igamc(math.Pow(2, float64(k.m-1)), chi2/2)}
}

// apEnPhi computes phi^(r) = sum_i C_i ln(C_i) over all r-bit cyclic
// windows of the sequence, with 0*ln(0) treated as 0. counts is a
// scratch-owned table of size 2^r, zeroed here and reused across calls.
func apEnPhi(bits BitView, n, r int, counts []int) float64 {
	if r == 0 {
		return 0
	}
	for i := range counts {
		counts[i] = 0
	}
	for i := 0; i < n; i++ {
		v := 0
		for j := 0; j < r; j++ {
			idx := (i + j) % n
			v = (v << 1) | int(bits.At(idx))
		}
		counts[v]++
	}
	phi := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		ci := float64(c) / float64(n)
		phi += ci * math.Log(ci)
	}
	return phi
}
