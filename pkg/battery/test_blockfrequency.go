package battery

// blockFrequencyKernel is spec.md §4.2: partitions ε into non-
// overlapping blocks of length M and checks the per-block ones-
// proportion against 1/2 via a chi-squared statistic.
type blockFrequencyKernel struct{}

func (blockFrequencyKernel) Name() string        { return "BlockFrequency" }
func (blockFrequencyKernel) Partitions() int     { return 1 }
func (blockFrequencyKernel) NewScratch() Scratch { return nil }

func (blockFrequencyKernel) Init(p TestParameters, c TestConstants) bool {
	m := p.BlockFrequencyBlockLength
	if p.N < 100 || m < 20 {
		return false
	}
	if float64(m) < 0.01*float64(p.N) {
		return false
	}
	nBlocks := p.N / m
	return nBlocks <= 100 && nBlocks > 0
}

func (blockFrequencyKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	m := p.BlockFrequencyBlockLength
	nBlocks := bits.Len() / m
	chi2 := 0.0
	for b := 0; b < nBlocks; b++ {
		ones := 0
		for i := b * m; i < (b+1)*m; i++ {
			if bits.At(i) == 1 {
				ones++
			}
		}
		pi := float64(ones) / float64(m)
		d := pi - 0.5
		chi2 += d * d
	}
	chi2 *= 4 * float64(m)
	return []float64{igamc(float64(nBlocks)/2, chi2/2)}
}
