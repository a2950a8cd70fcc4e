package battery

// longestRunKernel is spec.md §4.5: partitions ε into blocks, tallies
// the longest run of ones per block into a small histogram, and
// compares that histogram to its theoretical distribution via chi².
// The (M, K, N, pi) table is chosen by n, per the canonical NIST
// SP 800-22 categorization.
type longestRunKernel struct {
	m, k, blocks int
	pi           []float64
	classify     func(longestRun int) int
}

func (lr *longestRunKernel) Name() string        { return "LongestRunOfOnes" }
func (lr *longestRunKernel) Partitions() int     { return 1 }
func (lr *longestRunKernel) NewScratch() Scratch { return nil }

func (lr *longestRunKernel) Init(p TestParameters, c TestConstants) bool {
	switch {
	case p.N >= 750000:
		lr.m, lr.k, lr.blocks = 10000, 6, 75
		lr.pi = []float64{0.0882, 0.2092, 0.2483, 0.1933, 0.1208, 0.0675, 0.0727}
		lr.classify = classifyLongestRun10000
	case p.N >= 6272:
		lr.m, lr.k, lr.blocks = 128, 5, 49
		lr.pi = []float64{0.1174, 0.2430, 0.2493, 0.1752, 0.1027, 0.1124}
		lr.classify = classifyLongestRun128
	case p.N >= 128:
		lr.m, lr.k, lr.blocks = 8, 3, 16
		lr.pi = []float64{0.2148, 0.3672, 0.2305, 0.1875}
		lr.classify = classifyLongestRun8
	default:
		return false
	}
	return p.N/lr.m >= lr.blocks
}

func (lr *longestRunKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	hist := make([]int, lr.k+1)
	for b := 0; b < lr.blocks; b++ {
		start := b * lr.m
		longest, run := 0, 0
		for i := start; i < start+lr.m; i++ {
			if bits.At(i) == 1 {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		hist[lr.classify(longest)]++
	}
	chi2 := 0.0
	nBlocks := float64(lr.blocks)
	for i := 0; i <= lr.k; i++ {
		expected := nBlocks * lr.pi[i]
		d := float64(hist[i]) - expected
		chi2 += d * d / expected
	}
	return []float64{igamc(float64(lr.k)/2, chi2/2)}
}

func classifyLongestRun8(v int) int {
	switch {
	case v <= 1:
		return 0
	case v == 2:
		return 1
	case v == 3:
		return 2
	default:
		return 3
	}
}

func classifyLongestRun128(v int) int {
	switch {
	case v <= 4:
		return 0
	case v == 5:
		return 1
	case v == 6:
		return 2
	case v == 7:
		return 3
	case v == 8:
		return 4
	default:
		return 5
	}
}

func classifyLongestRun10000(v int) int {
	switch {
	case v <= 10:
		return 0
	case v == 11:
		return 1
	case v == 12:
		return 2
	case v == 13:
		return 3
	case v == 14:
		return 4
	case v == 15:
		return 5
	default:
		return 6
	}
}
