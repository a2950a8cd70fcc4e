package battery

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fftEngine wraps gonum's complex FFT, fed purely real input, to match the contract
// spec.md §4.7 and §9 require: real input of length n, magnitudes of
// the first floor(n/2)+1 Hermitian bins, double precision. The
// reference allows a pluggable backend (legacy codec or fftw3); here
// gonum.org/v1/gonum/dsp/fourier is that backend.
type fftEngine struct {
	n      int
	plan   *fourier.CmplxFFT
	input  []complex128
	output []complex128
}

// newFFTEngine allocates the plan and scratch buffers once; callers
// reuse the same engine across iterations (spec.md §3 ownership:
// "FFT plan and output" live in per-worker scratch, allocated once).
func newFFTEngine(n int) *fftEngine {
	return &fftEngine{
		n:      n,
		plan:   fourier.NewCmplxFFT(n),
		input:  make([]complex128, n),
		output: make([]complex128, n),
	}
}

// magnitudes maps x (values in {-1,+1}) to its DFT magnitude spectrum
// for bins [0, n/2], returning floor(n/2)+1 values.
func (e *fftEngine) magnitudes(x []int) []float64 {
	for i, v := range x {
		e.input[i] = complex(float64(v), 0)
	}
	e.output = e.plan.Coefficients(e.output, e.input)
	bins := e.n/2 + 1
	mags := make([]float64, bins)
	for j := 0; j < bins; j++ {
		mags[j] = cmplx.Abs(e.output[j])
	}
	return mags
}
