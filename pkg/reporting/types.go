package reporting

import "time"

// ReportSummary is a lightweight index entry over a persisted
// battery.RunReport, used by Storage.ListReports without loading every
// full report from disk.
type ReportSummary struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	OverallPass  float64   `json:"overall_pass_rate"`
	TestCount    int       `json:"test_count"`
	Filepath     string    `json:"filepath"`
}

// LiveRunState is the snapshot ProgressReporter emits while a battery
// run is in flight: which test is in which lifecycle state right now.
type LiveRunState struct {
	RunID         string            `json:"run_id"`
	Elapsed       time.Duration     `json:"elapsed"`
	IterationsDone int              `json:"iterations_done"`
	TotalIterations int             `json:"total_iterations"`
	TestStates    map[string]string `json:"test_states"`
}
