package battery

// excursionStates is the canonical 8-state list random excursion tests
// examine: four negative and four positive states around the zero
// line of the partial-sum walk.
var excursionStates = []int{-4, -3, -2, -1, 1, 2, 3, 4}

// excursionCycles finds the zero-crossings of the partial-sum walk and
// returns its cycles: the walk segments strictly between two
// consecutive zero-crossings (zeros themselves excluded), plus a final
// trailing cycle running from the last zero-crossing to the end of the
// sequence if the walk does not end back at 0. The reference
// implementation counts this trailing segment as one more cycle rather
// than discarding it ("count the last cycle if it was not counted
// already"), and its per-state visit counts scan the whole sequence,
// so the trailing segment must be folded in here rather than dropped.
func excursionCycles(sums []int) [][]int {
	var crossings []int
	for k := 1; k < len(sums); k++ {
		if sums[k] == 0 {
			crossings = append(crossings, k)
		}
	}
	var cycles [][]int
	start := 0
	for _, end := range crossings {
		cycles = append(cycles, sums[start+1:end])
		start = end
	}
	if start < len(sums)-1 {
		cycles = append(cycles, sums[start+1:])
	}
	return cycles
}

// excursionPi returns the canonical entrance-probability table for
// state x: pi_0(x) = 1-1/2|x|, pi_k(x) = (1/4x^2)(1-1/2|x|)^(k-1) for
// k=1..4, and pi_5(x) = (1/2|x|)(1-1/2|x|)^4 for the "5 or more" bucket.
func excursionPi(x int) [6]float64 {
	ax := x
	if ax < 0 {
		ax = -ax
	}
	q := 1.0 / (2.0 * float64(ax))
	var pi [6]float64
	pi[0] = 1 - q
	acc := q * q
	for k := 1; k < 5; k++ {
		pi[k] = acc
		acc *= 1 - q
	}
	pi[5] = acc / q
	return pi
}

// randomExcursionsKernel is spec.md §4.12: classifies, per state x in
// {-4..-1,1..4}, how many cycles of the partial-sum walk visit x
// exactly k times (k capped at 5), and compares against the canonical
// distribution via chi-squared.
type randomExcursionsKernel struct{}

func (randomExcursionsKernel) Name() string        { return "RandomExcursions" }
func (randomExcursionsKernel) Partitions() int     { return 8 }
func (randomExcursionsKernel) NewScratch() Scratch { return nil }

func (randomExcursionsKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N > 0
}

func (randomExcursionsKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sums := bits.PartialSums()
	cycles := excursionCycles(sums)
	j := len(cycles)
	results := make([]float64, len(excursionStates))
	if j < c.MinZeroCrossings {
		for i := range results {
			results[i] = NonPValue
		}
		return results
	}
	for si, x := range excursionStates {
		nu := [6]int{}
		for _, cyc := range cycles {
			count := 0
			for _, v := range cyc {
				if v == x {
					count++
				}
			}
			if count > 5 {
				count = 5
			}
			nu[count]++
		}
		pi := excursionPi(x)
		chi2 := 0.0
		jf := float64(j)
		for k := 0; k < 6; k++ {
			expected := jf * pi[k]
			d := float64(nu[k]) - expected
			chi2 += d * d / expected
		}
		results[si] = igamc(2.5, chi2/2)
	}
	return results
}
