package battery

import "math"

const rankRows = 32
const rankCols = 32

// rankKernel is spec.md §4.6: partitions ε into 32x32 GF(2) matrices
// and compares the observed rank distribution (full rank, rank-1,
// everything else) against the theoretical probabilities, grounded on
// original_source/src/utils/matrix.c's computeRank/determine_rank.
type rankKernel struct {
	matrixCount int
	pFull, pMinus1, pRest float64
}

func (rk *rankKernel) Name() string        { return "Rank" }
func (rk *rankKernel) Partitions() int     { return 1 }

type rankScratch struct {
	m *matrix
}

func (rk *rankKernel) NewScratch() Scratch {
	return &rankScratch{m: newMatrix(rankRows, rankCols)}
}

func (rk *rankKernel) Init(p TestParameters, c TestConstants) bool {
	rk.matrixCount = p.N / (rankRows * rankCols)
	if rk.matrixCount < 38 {
		return false
	}
	rk.pFull = rankProbability(rankRows)
	rk.pMinus1 = rankProbability(rankRows - 1)
	rk.pRest = 1 - rk.pFull - rk.pMinus1
	return true
}

// rankProbability computes the theoretical probability that a random
// 32x32 GF(2) matrix has rank r, via the canonical product formula
// scaled by 2^(r(64-r)-1024).
func rankProbability(r int) float64 {
	const m = rankRows
	prod := 1.0
	for i := 0; i < r; i++ {
		a := 1 - math.Pow(2, float64(i-m))
		b := 1 - math.Pow(2, float64(i-r))
		if b == 0 {
			continue
		}
		prod *= (a * a) / b
	}
	exp := float64(r*(2*m-r) - m*m)
	return prod * math.Pow(2, exp)
}

func (rk *rankKernel) Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64 {
	sc := s.(*rankScratch)
	bytes := bits.Bytes()
	fFull, fMinus1, fRest := 0, 0, 0
	blockSize := rankRows * rankCols
	for i := 0; i < rk.matrixCount; i++ {
		sc.m.fillRowMajor(bytes, i*blockSize)
		switch r := sc.m.rank(); {
		case r == rankRows:
			fFull++
		case r == rankRows-1:
			fMinus1++
		default:
			fRest++
		}
	}
	n := float64(rk.matrixCount)
	chi2 := sq(float64(fFull)-n*rk.pFull)/(n*rk.pFull) +
		sq(float64(fMinus1)-n*rk.pMinus1)/(n*rk.pMinus1) +
		sq(float64(fRest)-n*rk.pRest)/(n*rk.pRest)
	return []float64{math.Exp(-chi2 / 2)}
}

func sq(x float64) float64 { return x * x }
