package battery

const overlappingBlockSize = 1032

var overlappingPi = []float64{0.364091, 0.185659, 0.139381, 0.100571, 0.070432, 0.139865}

// overlappingKernel is spec.md §4.9: counts overlapping occurrences of
// a single all-ones template of length m within fixed-size blocks,
// bucketed into six classes (0..4 and "5 or more").
type overlappingKernel struct {
	m, blocks int
}

func (k *overlappingKernel) Name() string        { return "OverlappingTemplateMatchings" }
func (k *overlappingKernel) Partitions() int     { return 1 }
func (k *overlappingKernel) NewScratch() Scratch { return nil }

func (k *overlappingKernel) Init(p TestParameters, c TestConstants) bool {
	k.m = p.OverlappingTemplateLength
	k.blocks = p.N / overlappingBlockSize
	return k.blocks > 0
}

func (k *overlappingKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	buckets := make([]int, 6)
	for b := 0; b < k.blocks; b++ {
		start := b * overlappingBlockSize
		count := countOverlappingOnes(bits, start, overlappingBlockSize, k.m)
		if count > 5 {
			count = 5
		}
		buckets[count]++
	}
	chi2 := 0.0
	n := float64(k.blocks)
	for i, pi := range overlappingPi {
		expected := n * pi
		d := float64(buckets[i]) - expected
		chi2 += d * d / expected
	}
	return []float64{igamc(2.5, chi2/2)}
}

// countOverlappingOnes counts, within [start, start+length), how many
// positions begin an m-long run of all ones (the window slides by one
// bit regardless of match, i.e. matches may overlap).
func countOverlappingOnes(bits BitView, start, length, m int) int {
	count := 0
	end := start + length
	for i := start; i <= end-m; i++ {
		allOnes := true
		for j := 0; j < m; j++ {
			if bits.At(i+j) != 1 {
				allOnes = false
				break
			}
		}
		if allOnes {
			count++
		}
	}
	return count
}
