package main

import (
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhkimqd/sts-battery/pkg/battery"
	"github.com/jhkimqd/sts-battery/pkg/config"
	stsmetrics "github.com/jhkimqd/sts-battery/pkg/metrics"
	"github.com/jhkimqd/sts-battery/pkg/reporting"
	"github.com/jhkimqd/sts-battery/pkg/source"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run the statistical test battery against a bit sequence",
	Long:  `Loads a bit sequence (from file or a built-in generator) and runs the full NIST SP 800-22 battery against it.`,
	RunE:  runBattery,
}

func init() {
	runCmd.Flags().Int("n", 0, "bit sequence length per iteration (overrides config)")
	runCmd.Flags().Int("iterations", 0, "number of iterations (overrides config)")
	runCmd.Flags().Float64("alpha", 0, "significance level (overrides config)")
	runCmd.Flags().Int("workers", 0, "worker goroutine count (overrides config)")
	runCmd.Flags().String("source", "", "bit source kind: file|lcg|qr|sha1 (overrides config)")
	runCmd.Flags().String("path", "", "source file path, required when --source=file")
	runCmd.Flags().String("format", "", "source file format: ascii|binary (overrides config)")
	runCmd.Flags().String("out", "", "report output directory (overrides config)")
}

func runBattery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyRunOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(cfg.Framework.LogFormat),
		Output: os.Stdout,
	})

	logger.Info("stsbattery starting", "version", version)

	bitSource, closeSource, err := buildBitSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to build bit source: %w", err)
	}
	if closeSource != nil {
		defer closeSource()
	}

	progressReporter := reporting.NewProgressReporter(reporting.FormatText, logger)

	logger.Info("running battery", "n", cfg.Battery.N, "iterations", cfg.Battery.Iterations, "workers", cfg.Battery.Workers)
	report, err := battery.Run(cfg.Battery, bitSource, logger)
	if err != nil {
		return fmt.Errorf("battery run failed: %w", err)
	}
	logger = logger.WithRun(report.RunID)
	logger.Info("battery run complete", "overall_pass_rate", report.OverallPassRate())

	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	savedPath, err := storage.SaveReport(&report)
	if err != nil {
		logger.Warn("failed to save report", "error", err)
	}

	formatter := reporting.NewFormatter(logger)
	reportPath := filepath.Join(cfg.Reporting.OutputDir, "finalAnalysisReport.txt")
	if f, err := os.Create(reportPath); err != nil {
		logger.Warn("failed to create final analysis report", "error", err)
	} else {
		if err := formatter.WriteFinalAnalysisReport(f, &report); err != nil {
			logger.Warn("failed to write final analysis report", "error", err)
		}
		f.Close()
	}

	progressReporter.ReportRunCompleted(&report)
	if savedPath != "" {
		fmt.Printf("report saved to %s\n", savedPath)
	}
	fmt.Printf("final analysis report: %s\n", reportPath)

	if cfg.Metrics.Enabled {
		collector := stsmetrics.NewCollector()
		collector.ObserveAll(report)
		serveMetrics(cfg.Metrics.Listen, collector, logger)
	}

	return nil
}

// buildBitSource constructs the battery.BitSource named by
// cfg.Source.Kind, returning an optional close function for sources
// holding an open file handle.
func buildBitSource(cfg *config.Config) (battery.BitSource, func(), error) {
	switch cfg.Source.Kind {
	case "file":
		format := source.FormatASCII
		if cfg.Source.Format == "binary" {
			format = source.FormatBinary
		}
		reader, err := source.NewFileReader(cfg.Source.Path, format)
		if err != nil {
			return nil, nil, err
		}
		return reader, func() { reader.Close() }, nil
	case "qr":
		return source.GeneratorSource{Gen: source.QuadraticResidueSource{
			MasterSeed: cfg.Source.MasterSeed,
			Modulus:    new(big.Int).Set(source.DefaultQRModulus()),
		}}, nil, nil
	case "sha1":
		return source.GeneratorSource{Gen: source.SHA1CounterSource{MasterSeed: cfg.Source.MasterSeed}}, nil, nil
	case "lcg", "":
		return source.GeneratorSource{Gen: source.LCGSource{MasterSeed: cfg.Source.MasterSeed}}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("n"); v > 0 {
		cfg.Battery.N = v
	}
	if v, _ := cmd.Flags().GetInt("iterations"); v > 0 {
		cfg.Battery.Iterations = v
	}
	if v, _ := cmd.Flags().GetFloat64("alpha"); v > 0 {
		cfg.Battery.Alpha = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Battery.Workers = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source.Kind = v
	}
	if v, _ := cmd.Flags().GetString("path"); v != "" {
		cfg.Source.Path = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Source.Format = v
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.Reporting.OutputDir = v
	}
}

// serveMetrics exposes the collector's Prometheus handler on listen
// until interrupted, mirroring the teacher's fuzz command's
// signal.Notify shutdown pattern.
func serveMetrics(listen string, collector *stsmetrics.Collector, logger *reporting.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{Addr: listen, Handler: mux}

	go func() {
		logger.Info("serving metrics", "listen", listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down metrics server")
	server.Close()
}
