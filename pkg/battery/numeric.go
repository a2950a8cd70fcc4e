package battery

import "gonum.org/v1/gonum/mathext"

// erfc is the complementary error function, used throughout the kernels
// (Frequency, Runs, DiscreteFourierTransform, Universal,
// RandomExcursionsVariant) to turn a normalized statistic into a
// two-sided tail probability.
func erfc(x float64) float64 {
	return mathext.Erfc(x)
}

// igamc is the regularized upper incomplete gamma function
// Γ(a,x)/Γ(a), used by every χ²-based kernel (BlockFrequency,
// LongestRunOfOnes, NonOverlappingTemplateMatchings,
// OverlappingTemplateMatchings, ApproximateEntropy, RandomExcursions,
// Serial, LinearComplexity) and by MetricsEngine's uniformity check.
func igamc(a, x float64) float64 {
	if x <= 0 {
		return 1
	}
	return mathext.GammaIncRegComp(a, x)
}

// normalCDF is the standard normal cumulative distribution function,
// used by CumulativeSums's closed-form p-value series.
func normalCDF(x float64) float64 {
	return 0.5 * erfc(-x/sqrt2)
}

const (
	sqrt2 = 1.4142135623730951
	ln2   = 0.6931471805599453
)
