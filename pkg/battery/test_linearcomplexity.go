package battery

import "math"

var linearComplexityPi = []float64{0.01047, 0.03125, 0.125, 0.5, 0.25, 0.0625, 0.020833}

// linearComplexityKernel is spec.md §4.15: partitions ε into blocks,
// computes each block's minimal LFSR length via Berlekamp-Massey over
// GF(2), and compares the resulting distribution (after centering
// against the theoretical mean) to the canonical 7-class table.
type linearComplexityKernel struct {
	m, blocks int
}

// linearComplexityScratch holds the Berlekamp-Massey working arrays,
// sized to the kernel's fixed block length m and reused across every
// block of every iteration.
type linearComplexityScratch struct {
	c, b, t []byte
}

func (k *linearComplexityKernel) Name() string    { return "LinearComplexity" }
func (k *linearComplexityKernel) Partitions() int { return 1 }

func (k *linearComplexityKernel) NewScratch() Scratch {
	return &linearComplexityScratch{
		c: make([]byte, k.m+1),
		b: make([]byte, k.m+1),
		t: make([]byte, k.m+1),
	}
}

func (k *linearComplexityKernel) Init(p TestParameters, c TestConstants) bool {
	k.m = p.LinearComplexitySequenceLength
	if p.N < 1000000 || k.m < 500 || k.m > 5000 {
		return false
	}
	k.blocks = p.N / k.m
	return k.blocks >= 200
}

func (k *linearComplexityKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sc := s.(*linearComplexityScratch)
	m := k.m
	mf := float64(m)
	sign := -1.0
	if m%2 != 0 {
		sign = 1.0
	}
	mu := mf/2 + (9+sign)/36 - (mf/3+2.0/9.0)/math.Pow(2, mf)

	hist := make([]int, 7)
	for b := 0; b < k.blocks; b++ {
		start := b * m
		block := bits.Block(start, m)
		l := berlekampMassey(block.Bytes(), sc)
		msign := 1.0
		if m%2 != 0 {
			msign = -1.0
		}
		t := msign*(float64(l)-mu) + 2.0/9.0
		hist[linearComplexityBin(t)]++
	}

	chi2 := 0.0
	n := float64(k.blocks)
	for i, pi := range linearComplexityPi {
		expected := n * pi
		d := float64(hist[i]) - expected
		chi2 += d * d / expected
	}
	return []float64{igamc(3, chi2/2)}
}

func linearComplexityBin(t float64) int {
	switch {
	case t <= -2.5:
		return 0
	case t <= -1.5:
		return 1
	case t <= -0.5:
		return 2
	case t <= 0.5:
		return 3
	case t <= 1.5:
		return 4
	case t <= 2.5:
		return 5
	default:
		return 6
	}
}

// berlekampMassey computes the minimal LFSR length generating s, the
// standard Berlekamp-Massey algorithm over GF(2), reusing sc's c/b/t
// arrays instead of allocating fresh ones per call.
func berlekampMassey(s []byte, sc *linearComplexityScratch) int {
	n := len(s)
	c, b, t := sc.c, sc.b, sc.t
	for i := range c {
		c[i] = 0
		b[i] = 0
	}
	c[0] = 1
	b[0] = 1
	l := 0
	m := 1
	for idx := 0; idx < n; idx++ {
		d := s[idx]
		for i := 1; i <= l; i++ {
			d ^= c[i] & s[idx-i]
		}
		if d == 1 {
			copy(t, c)
			for j := 0; j+m <= n; j++ {
				c[j+m] ^= b[j]
			}
			if l <= idx/2 {
				l = idx + 1 - l
				copy(b, t)
				m = 1
			} else {
				m++
			}
		} else {
			m++
		}
	}
	return l
}
