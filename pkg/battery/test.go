package battery

// TestState is a test's lifecycle stage, mirrored on the teacher's
// orchestrator.TestState enum: a forward-only sequence with exactly
// one re-entry point (Destroy back to Init for a subsequent run).
type TestState int

const (
	StateNull TestState = iota
	StateInit
	StateIterate
	StatePrint
	StateMetrics
	StateDestroy
	// StateDisabled is reachable only from StateInit, when a test's
	// size precondition is not met (spec.md §4.17); the driver skips
	// it in every later phase.
	StateDisabled
)

func (s TestState) String() string {
	switch s {
	case StateNull:
		return "NULL"
	case StateInit:
		return "INIT"
	case StateIterate:
		return "ITERATE"
	case StatePrint:
		return "PRINT"
	case StateMetrics:
		return "METRICS"
	case StateDestroy:
		return "DESTROY"
	case StateDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// Scratch is per-worker private working memory a kernel may need
// across the lifetime of one iteration (rank matrix rows, BM arrays,
// FFT plan/output, frequency tables, partial-sum arrays). Each kernel
// type asserts Scratch to its own concrete type; the Driver allocates
// one Scratch per worker via a kernel's NewScratch and never shares it
// across workers.
type Scratch interface{}

// Kernel is the per-test part of the capability set spec.md §9 derives
// from the reference's function-pointer dispatch table: init and
// iterate. Metrics and destroy are run by the Driver, the same way for
// every kernel, and are not Kernel methods. Name() identifies the test for logging, reporting, and metrics
// labeling. Partitions() is the number of p-values emitted per
// iteration (1 for most tests; 2, 8, 18, or len(templates) for the
// multi-p tests).
type Kernel interface {
	Name() string
	// Init is called once, with read-only TestParameters/TestConstants.
	// It returns false if n or another parameter fails this test's
	// precondition, which self-disables the test (spec.md §4.17).
	Init(p TestParameters, c TestConstants) bool
	Partitions() int
	// NewScratch allocates one worker's private scratch buffers.
	NewScratch() Scratch
	// Iterate consumes one iteration's bit view and this worker's
	// scratch, producing exactly Partitions() p-values. An entry of
	// NonPValue in the result means this iteration declined for that
	// partition (precondition such as Runs' |pi-0.5| bound, or
	// RandomExcursions' zero-crossing minimum).
	Iterate(bits BitView, p TestParameters, c TestConstants, s Scratch) []float64
}
