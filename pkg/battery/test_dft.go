package battery

import "math"

// dftKernel is spec.md §4.7: a spectral test using the magnitude of
// the real-to-complex DFT of the ±1-mapped sequence, counting how many
// of the first n/2 frequency bins fall below a 95%-confidence
// threshold.
type dftKernel struct{}

// dftScratch holds the per-worker FFT plan, its complex input/output
// buffers, and the ±1-mapped integer buffer. NewScratch returns it
// empty; the first Iterate sizes everything to n, and later iterations
// reuse it (reallocating only if n changes).
type dftScratch struct {
	engine *fftEngine
	x      []int
}

func (dftKernel) Name() string    { return "DiscreteFourierTransform" }
func (dftKernel) Partitions() int { return 1 }

func (dftKernel) NewScratch() Scratch {
	return &dftScratch{}
}

func (dftKernel) Init(p TestParameters, c TestConstants) bool {
	return p.N >= 1000
}

func (dftKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	n := bits.Len()
	sc := s.(*dftScratch)
	if sc.engine == nil || sc.engine.n != n {
		sc.engine = newFFTEngine(n)
		sc.x = make([]int, n)
	}
	for i := 0; i < n; i++ {
		sc.x[i] = bits.Signed(i)
	}
	mags := sc.engine.magnitudes(sc.x)

	t := math.Sqrt(math.Log(20) * float64(n))
	n1 := 0
	half := n / 2
	for j := 0; j < half; j++ {
		if mags[j] < t {
			n1++
		}
	}
	n0 := 0.95 * float64(n) / 2
	d := (float64(n1) - n0) / math.Sqrt(float64(n)*0.95*0.05/4)
	return []float64{erfc(math.Abs(d) / sqrt2)}
}
