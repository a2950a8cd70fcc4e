package reporting

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jhkimqd/sts-battery/pkg/battery"
)

// Formatter generates the final analysis report from a RunReport.
// Adapted from the teacher's Formatter (NewFormatter/GenerateReport
// shape kept), but the HTML/chaos-scenario templating is replaced by
// the fixed-column text layout original_source/src/assess.c's
// postProcessResults produces: one line per (test, partition) with
// C1..C10 bin counts, p-value, proportion, and the test name. The
// legacy per-test data*.txt re-partition files are not reproduced
// (spec.md §9 Open Question: that code path is a reporting artifact,
// not authoritative).
type Formatter struct {
	logger *Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(logger *Logger) *Formatter {
	return &Formatter{logger: logger}
}

// WriteFinalAnalysisReport writes the NIST-style finalAnalysisReport.txt
// layout to w: a header, then one line per (test, partition).
func (f *Formatter) WriteFinalAnalysisReport(w io.Writer, report *battery.RunReport) error {
	results := make([]battery.MetricResult, len(report.Results))
	copy(results, report.Results)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TestName != results[j].TestName {
			return results[i].TestName < results[j].TestName
		}
		return results[i].Partition < results[j].Partition
	})

	if _, err := fmt.Fprintf(w, "RUN %s  n=%d  iterations=%d  alpha=%v\n",
		report.RunID, report.Params.N, report.Params.Iterations, report.Params.Alpha); err != nil {
		return err
	}
	header := ""
	for i := 1; i <= report.Params.UniformityBins; i++ {
		header += fmt.Sprintf("%-5s ", fmt.Sprintf("C%d", i))
	}
	header += fmt.Sprintf("%-10s %-10s %-30s %-6s %-18s\n", "P-VALUE", "PROPORTION", "STATISTICAL TEST", "PART", "DECISION")
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for _, m := range results {
		line := ""
		for _, count := range m.Bins {
			line += fmt.Sprintf("%-5d ", count)
		}
		line += fmt.Sprintf("%-10.6f %-10s %-30s %-6d %-18s\n",
			m.UniformityP, fmt.Sprintf("%d/%d", m.PassCount, m.Sample), m.TestName, m.Partition, m.Decision)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultsFile writes one test's raw p-value sequence to path,
// one value per line (the per-test results.txt spec.md §6 names;
// no legacy data*.txt partitioning).
func (f *Formatter) WriteResultsFile(path string, pvalues []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()
	for _, p := range pvalues {
		if p == battery.NonPValue {
			if _, err := fmt.Fprintln(file, "NON_P_VALUE"); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(file, "%.6f\n", p); err != nil {
			return err
		}
	}
	return nil
}
