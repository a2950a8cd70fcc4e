package battery

import "math"

// serialKernel is spec.md §4.14: compares overlapping-window
// frequencies at three adjacent block lengths (m, m-1, m-2) via the
// psi-squared statistic, emitting two p-values (first and second
// differences).
type serialKernel struct {
	m int
}

func (k *serialKernel) Name() string        { return "Serial" }
func (k *serialKernel) Partitions() int     { return 2 }
func (k *serialKernel) NewScratch() Scratch { return nil }

func (k *serialKernel) Init(p TestParameters, c TestConstants) bool {
	k.m = p.SerialBlockLength
	maxM := int(math.Log2(float64(p.N))) - 2
	return k.m > 0 && k.m < maxM
}

func serialPsi2(bits BitView, n, r int) float64 {
	if r <= 0 {
		return 0
	}
	size := 1 << uint(r)
	counts := make([]int, size)
	for i := 0; i < n; i++ {
		v := 0
		for j := 0; j < r; j++ {
			idx := (i + j) % n
			v = (v << 1) | int(bits.At(idx))
		}
		counts[v]++
	}
	sumSq := 0.0
	for _, c := range counts {
		sumSq += float64(c) * float64(c)
	}
	return (float64(size)/float64(n))*sumSq - float64(n)
}

func (k *serialKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	n := bits.Len()
	m := k.m
	psiM := serialPsi2(bits, n, m)
	psiM1 := serialPsi2(bits, n, m-1)
	psiM2 := serialPsi2(bits, n, m-2)

	delta1 := psiM - psiM1
	delta2 := psiM - 2*psiM1 + psiM2

	p1 := igamc(math.Pow(2, float64(m-2)), delta1/2)
	p2 := igamc(math.Pow(2, float64(m-3)), delta2/2)
	return []float64{p1, p2}
}
