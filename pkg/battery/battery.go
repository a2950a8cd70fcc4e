package battery

import (
	"time"

	"github.com/google/uuid"
)

// RunReport is the top-level record of one battery execution: the
// parameters used, which tests survived Init, the aggregate
// MetricResults, and timing/identity metadata for audit (grounded on
// the gRPC service pattern in the retrieval pack's
// AmmannChristian-nist-sp800-22-rev1a example, which stamps every
// result set with a uuid-keyed run).
type RunReport struct {
	RunID        string         `json:"run_id"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	Params       TestParameters `json:"params"`
	EnabledTests []string       `json:"enabled_tests"`
	Results      []MetricResult `json:"results"`
}

// OverallPassRate is the fraction of (test, partition) results that
// decided PASSED_BOTH.
func (r RunReport) OverallPassRate() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	passed := 0
	for _, m := range r.Results {
		if m.Decision == DecisionPassedBoth {
			passed++
		}
	}
	return float64(passed) / float64(len(r.Results))
}

// Run executes one full battery: Init, Iterate, Metrics, Destroy, in
// that order, over every kernel AllKernels returns (spec.md §2 data
// flow). Callers wanting a subset of tests should call the Driver
// methods directly instead.
func Run(p TestParameters, source BitSource, logger Logger) (RunReport, error) {
	if err := p.Validate(); err != nil {
		return RunReport{}, err
	}
	started := time.Now()
	runID := uuid.NewString()

	driver := NewDriver(p, AllKernels(), source, logger)
	if err := driver.Init(AllKernels()); err != nil {
		return RunReport{}, err
	}
	if err := driver.Iterate(); err != nil {
		return RunReport{}, err
	}
	results := driver.Metrics()
	driver.Destroy()

	return RunReport{
		RunID:        runID,
		StartedAt:    started,
		FinishedAt:   time.Now(),
		Params:       p,
		EnabledTests: driver.EnabledTests(),
		Results:      results,
	}, nil
}
