package battery

import (
	"fmt"
	"sync"
)

// entry pairs a Kernel with its own lifecycle state and scratch
// allocator, mirroring the reference's per-test dispatch-table row
// (spec.md §9).
type entry struct {
	kernel Kernel
	state  TestState
	store  *PValueStore
}

// Driver runs the state machine spec.md §4.17 describes: per test,
// NULL -> INIT -> ITERATE -> PRINT -> METRICS -> DESTROY, forward-only
// except INIT re-enters from DESTROY. Tests that fail their size
// precondition in INIT move straight to DISABLED and are skipped by
// every later phase.
type Driver struct {
	params    TestParameters
	constants TestConstants
	entries   []*entry
	source    BitSource
	logger    Logger
}

// Logger is the structured-logging hook the driver calls for
// diagnostics (spec.md §7: "diagnostic conditions are surfaced via a
// logging hook, never via silent masking").
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// noopLogger discards everything; used when NewDriver is called
// without an explicit logger.
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// BitSource produces one iteration's worth of bits at a time.
// Implementations must be safe for concurrent use by multiple workers,
// and must be reproducible keyed on iteration rather than call order
// (workers process iterations out of order). Grounded on spec.md §6's
// consumes-contract; concretely implemented by pkg/source.
type BitSource interface {
	ReadIteration(iteration, n int, out []byte) error
}

// AllKernels returns one instance of each of the fifteen test kernels,
// in the canonical NIST SP 800-22 ordering (spec.md §2 TestKernels).
func AllKernels() []Kernel {
	return []Kernel{
		frequencyKernel{},
		blockFrequencyKernel{},
		cusumKernel{},
		runsKernel{},
		&longestRunKernel{},
		&rankKernel{},
		dftKernel{},
		&nonOverlappingKernel{},
		&overlappingKernel{},
		&universalKernel{},
		&apEnKernel{},
		randomExcursionsKernel{},
		randomExcursionsVariantKernel{},
		&serialKernel{},
		&linearComplexityKernel{},
	}
}

// NewDriver builds a Driver over the given kernels, source, and
// logger. p must already pass Validate.
func NewDriver(p TestParameters, kernels []Kernel, source BitSource, logger Logger) *Driver {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Driver{
		params:    p,
		constants: NewTestConstants(p),
		source:    source,
		logger:    logger,
		entries:   make([]*entry, 0, len(kernels)),
	}
}

// Init runs each kernel's Init, self-disabling any that reject the
// parameters. Returns an error if no kernel remains enabled
// (spec.md §4.17: "fails fast if no test remains enabled").
func (d *Driver) Init(kernels []Kernel) error {
	d.entries = d.entries[:0]
	enabled := 0
	for _, k := range kernels {
		e := &entry{kernel: k, state: StateNull}
		if k.Init(d.params, d.constants) {
			e.state = StateInit
			e.store = NewPValueStore(d.params.Iterations, k.Partitions())
			enabled++
		} else {
			e.state = StateDisabled
			d.logger.Warn("test disabled: size precondition not met", "test", k.Name())
		}
		d.entries = append(d.entries, e)
	}
	if enabled == 0 {
		return fmt.Errorf("battery: no test remains enabled for n=%d", d.params.N)
	}
	return nil
}

// Iterate runs all enabled tests over d.params.Iterations bit streams,
// using a worker pool of d.params.Workers goroutines. Parallelism is
// over iterations, not over tests within an iteration (spec.md §5).
func (d *Driver) Iterate() error {
	for _, e := range d.entries {
		if e.state == StateInit {
			e.state = StateIterate
		}
	}

	jobs := make(chan int, d.params.Iterations)
	for i := 0; i < d.params.Iterations; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	errs := make(chan error, d.params.Workers)
	for w := 0; w < d.params.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.worker(jobs); err != nil {
				select {
				case errs <- err:
				default:
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err, ok := <-errs; ok {
		return err
	}

	for _, e := range d.entries {
		if e.state == StateIterate {
			e.state = StatePrint
		}
	}
	return nil
}

// worker drains the jobs channel, running one iteration end to end:
// read the bit stream, run every enabled kernel against it with its
// own scratch, append results. Scratch is allocated once per worker
// per kernel and reused across iterations (spec.md §3 ownership).
func (d *Driver) worker(jobs <-chan int) error {
	buf := make([]byte, d.params.N)
	scratch := make([]Scratch, len(d.entries))
	for i, e := range d.entries {
		if e.state == StateIterate || e.state == StateInit {
			scratch[i] = e.kernel.NewScratch()
		}
	}
	for iter := range jobs {
		if err := d.source.ReadIteration(iter, d.params.N, buf); err != nil {
			return fmt.Errorf("battery: reading iteration %d: %w", iter, err)
		}
		bits := NewBitView(buf)
		for i, e := range d.entries {
			if e.state != StateIterate {
				continue
			}
			pvalues := e.kernel.Iterate(bits, d.params, d.constants, scratch[i])
			for part, pv := range pvalues {
				if pv != NonPValue && !(pv >= 0 && pv <= 1) {
					d.logger.Error("numeric anomaly: p-value outside [0,1]", "test", e.kernel.Name(), "iteration", iter, "partition", part, "p_value", pv)
				}
			}
			declined := allDeclined(pvalues)
			e.store.Set(iter, pvalues, d.params.Alpha, declined)
		}
	}
	return nil
}

func allDeclined(pvalues []float64) bool {
	for _, p := range pvalues {
		if p != NonPValue {
			return false
		}
	}
	return true
}

// Metrics runs the MetricsEngine over every enabled test's partitions,
// only after Iterate's join point (spec.md §5: "MetricsEngine only
// runs after all iterations complete").
func (d *Driver) Metrics() []MetricResult {
	var results []MetricResult
	for _, e := range d.entries {
		if e.state != StatePrint {
			continue
		}
		e.state = StateMetrics
		for part := 0; part < e.store.Partitions(); part++ {
			pv := e.store.Partition(part)
			results = append(results, EvaluatePartition(
				e.kernel.Name(), part, pv, d.params.Alpha,
				d.params.UniformityBins, d.params.UniformityLevel,
			))
		}
	}
	return results
}

// Destroy transitions every test still in METRICS to DESTROY. A
// subsequent Init call re-enters the tests from there.
func (d *Driver) Destroy() {
	for _, e := range d.entries {
		if e.state == StateMetrics {
			e.state = StateDestroy
		}
	}
}

// EnabledTests returns the names of tests that survived Init.
func (d *Driver) EnabledTests() []string {
	var names []string
	for _, e := range d.entries {
		if e.state != StateDisabled && e.state != StateNull {
			names = append(names, e.kernel.Name())
		}
	}
	return names
}
