package battery

import "math"

// Decision categorizes a (test, partition)'s aggregate outcome,
// spec.md §4.16 point 7.
type Decision string

const (
	DecisionPassedBoth       Decision = "PASSED_BOTH"
	DecisionFailedUniformity Decision = "FAILED_UNIFORMITY"
	DecisionFailedProportion Decision = "FAILED_PROPORTION"
	DecisionFailedBoth       Decision = "FAILED_BOTH"
	DecisionUndefined        Decision = "UNDEFINED"
)

// MetricResult is the aggregate outcome for one (test, partition),
// spec.md §6's produces-contract.
type MetricResult struct {
	TestName    string   `json:"test_name"`
	Partition   int      `json:"partition"`
	Sample      int      `json:"sample"`
	PassCount   int      `json:"pass_count"`
	PassMin     float64  `json:"pass_min"`
	PassMax     float64  `json:"pass_max"`
	UniformityP float64  `json:"uniformity_p"`
	Bins        []int    `json:"bins"`
	Decision    Decision `json:"decision"`
}

// excursionTestNames identifies the two tests whose NON_P_VALUE
// convention differs: spec.md §4.16 point 8, only p > 0 counts toward
// the sample for RandomExcursions and RandomExcursionsVariant (p == 0
// there signals an unusable cycle, distinct from the NonPValue
// decline sentinel).
var excursionTestNames = map[string]bool{
	"RandomExcursions":        true,
	"RandomExcursionsVariant": true,
}

// EvaluatePartition runs the MetricsEngine algorithm (spec.md §4.16)
// over one partition's raw p-value sequence.
func EvaluatePartition(testName string, partition int, pvalues []float64, alpha float64, bins int, uniformityLevel float64) MetricResult {
	filterZero := excursionTestNames[testName]

	var valid []float64
	for _, p := range pvalues {
		if p == NonPValue {
			continue
		}
		if filterZero && p <= 0 {
			continue
		}
		valid = append(valid, p)
	}
	s := len(valid)

	result := MetricResult{
		TestName:  testName,
		Partition: partition,
		Sample:    s,
		Bins:      make([]int, bins),
		Decision:  DecisionUndefined,
	}
	if s == 0 {
		return result
	}

	tooLow := 0
	for _, p := range valid {
		if p < alpha {
			tooLow++
		}
	}
	passCount := s - tooLow
	result.PassCount = passCount

	pHat := 1 - alpha
	sf := float64(s)
	bound := 3 * math.Sqrt(pHat*alpha/sf) * sf
	passMin := pHat*sf - bound
	passMax := pHat*sf + bound
	result.PassMin = passMin
	result.PassMax = passMax

	for _, p := range valid {
		idx := int(p * float64(bins))
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		result.Bins[idx]++
	}

	expected := sf / float64(bins)
	if expected <= 0 {
		result.Decision = DecisionUndefined
		return result
	}
	chi2 := 0.0
	for _, count := range result.Bins {
		d := float64(count) - expected
		chi2 += d * d / expected
	}
	result.UniformityP = igamc(float64(bins-1)/2, chi2/2)

	passOK := float64(passCount) >= passMin && float64(passCount) <= passMax
	uniformOK := result.UniformityP >= uniformityLevel

	switch {
	case passOK && uniformOK:
		result.Decision = DecisionPassedBoth
	case !passOK && !uniformOK:
		result.Decision = DecisionFailedBoth
	case !uniformOK:
		result.Decision = DecisionFailedUniformity
	default:
		result.Decision = DecisionFailedProportion
	}
	return result
}
