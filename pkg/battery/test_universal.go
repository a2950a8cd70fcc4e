package battery

import "math"

// universalKernel is spec.md §4.10 (Maurer's Universal statistical
// test): builds a most-recent-occurrence table over L-bit patterns
// during an initialization phase, then measures how far apart repeat
// occurrences are during a test phase, comparing against a tabulated
// expectation.
type universalKernel struct {
	l, q, k int
}

var universalExpected = map[int]float64{
	6: 5.2177052, 7: 6.1962507, 8: 7.1836656, 9: 8.1764248, 10: 9.1723243,
	11: 10.170032, 12: 11.168765, 13: 12.168070, 14: 13.167693, 15: 14.167488,
	16: 15.167379,
}

var universalVariance = map[int]float64{
	6: 2.954, 7: 3.125, 8: 3.238, 9: 3.311, 10: 3.356,
	11: 3.384, 12: 3.401, 13: 3.410, 14: 3.416, 15: 3.419, 16: 3.421,
}

func (k *universalKernel) Name() string        { return "Universal" }
func (k *universalKernel) Partitions() int     { return 1 }
func (k *universalKernel) NewScratch() Scratch { return nil }

func (k *universalKernel) Init(p TestParameters, c TestConstants) bool {
	if p.N < 387840 {
		return false
	}
	switch {
	case p.N < 904960:
		k.l = 6
	case p.N < 2068480:
		k.l = 7
	case p.N < 4654080:
		k.l = 8
	case p.N < 10342400:
		k.l = 9
	case p.N < 22753280:
		k.l = 10
	case p.N < 49643520:
		k.l = 11
	case p.N < 107560960:
		k.l = 12
	case p.N < 231669760:
		k.l = 13
	case p.N < 496435200:
		k.l = 14
	case p.N < 1059061760:
		k.l = 15
	default:
		k.l = 16
	}
	k.q = 10 << uint(k.l)
	k.k = p.N/k.l - k.q
	return k.k > 0
}

func (k *universalKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	l := k.l
	tableSize := 1 << uint(l)
	table := make([]int, tableSize)

	patternAt := func(blockIdx int) int {
		start := blockIdx * l
		v := 0
		for j := 0; j < l; j++ {
			v = (v << 1) | int(bits.At(start+j))
		}
		return v
	}

	for i := 0; i < k.q; i++ {
		table[patternAt(i)] = i + 1
	}

	sum := 0.0
	for i := k.q; i < k.q+k.k; i++ {
		w := patternAt(i)
		sum += math.Log2(float64(i + 1 - table[w]))
		table[w] = i + 1
	}
	fn := sum / float64(k.k)

	expected := universalExpected[l]
	variance := universalVariance[l]
	lf := float64(l)
	kf := float64(k.k)
	cScale := 0.7 - 0.8/lf + (4+32/lf)*math.Pow(kf, -3/lf)/15
	sigma := cScale * math.Sqrt(variance/kf)
	arg := math.Abs((fn - expected) / (sqrt2 * sigma))
	return []float64{erfc(arg)}
}
