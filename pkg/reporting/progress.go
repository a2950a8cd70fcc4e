package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhkimqd/sts-battery/pkg/battery"
)

// OutputFormat represents the progress output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// ProgressReporter reports battery execution progress: per-test state
// transitions, iteration throughput, and a final run summary. Adapted
// from the teacher's ProgressReporter (same three output formats, same
// clear-line/clear-screen TUI plumbing), re-pointed at Driver
// TestState transitions and RunReport instead of chaos-scenario
// fault/criterion events.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, logger: logger}
}

// ReportState reports a full live-run snapshot.
func (pr *ProgressReporter) ReportState(state LiveRunState) {
	switch pr.format {
	case FormatJSON:
		pr.reportJSON(state)
	case FormatTUI:
		pr.reportTUI(state)
	default:
		pr.reportText(state)
	}
}

// ReportStateTransition reports one test kernel's lifecycle
// transition, e.g. INIT -> ITERATE.
func (pr *ProgressReporter) ReportStateTransition(test string, from, to battery.TestState) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":      "state_transition",
			"test":       test,
			"from_state": from.String(),
			"to_state":   to.String(),
			"timestamp":  time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("state: %s %s -> %s\n", test, from, to)
	default:
		fmt.Printf("[STATE] %s %s -> %s\n", test, from, to)
	}
}

// ReportTestDisabled reports a kernel self-disabling during Init.
func (pr *ProgressReporter) ReportTestDisabled(test, reason string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "test_disabled",
			"test":      test,
			"reason":    reason,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	default:
		fmt.Printf("[DISABLED] %s: %s\n", test, reason)
	}
}

// ReportRunCompleted reports the final RunReport.
func (pr *ProgressReporter) ReportRunCompleted(report *battery.RunReport) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"report":    report,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printSummary(report)
	default:
		pr.printSummary(report)
	}
}

func (pr *ProgressReporter) reportText(state LiveRunState) {
	fmt.Printf("[%s] %d/%d iterations | elapsed %s\n",
		time.Now().Format("15:04:05"),
		state.IterationsDone, state.TotalIterations,
		state.Elapsed.Round(time.Second))
}

func (pr *ProgressReporter) reportJSON(state LiveRunState) {
	data, err := json.Marshal(state)
	if err != nil {
		pr.logger.Error("failed to marshal state", "error", err)
		return
	}
	fmt.Println(string(data))
}

func (pr *ProgressReporter) reportTUI(state LiveRunState) {
	pr.clearScreen()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  Run: %s\n", state.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("iterations: %d/%d\n", state.IterationsDone, state.TotalIterations)
	fmt.Printf("elapsed: %s\n", state.Elapsed.Round(time.Second))
	for name, st := range state.TestStates {
		fmt.Printf("  %-32s %s\n", name, st)
	}
}

func (pr *ProgressReporter) printSummary(report *battery.RunReport) {
	fmt.Printf("run %s: %d tests enabled, %.1f%% overall pass rate\n",
		report.RunID, len(report.EnabledTests), report.OverallPassRate()*100)
	for _, m := range report.Results {
		fmt.Printf("  %-32s partition=%d sample=%-6d %s\n", m.TestName, m.Partition, m.Sample, m.Decision)
	}
}

func (pr *ProgressReporter) clearLine() {
	fmt.Print("\r\033[K")
}

func (pr *ProgressReporter) clearScreen() {
	fmt.Print("\033[H\033[2J")
}
