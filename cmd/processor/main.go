// Command processor runs a batch extraction over daily production report
// workbooks and writes the normalized records as Excel and/or CSV files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pcreport/internal/config"
	"pcreport/internal/dataprocessing"
	"pcreport/internal/infrastructure"
	"pcreport/internal/services"
	"pcreport/internal/validation"
)

type options struct {
	inDir     string
	outDir    string
	vendor    string
	format    string
	pattern   string
	recursive bool
	daily     bool
	summary   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.inDir, "in", "", "input directory with report workbooks (default: configured input dir)")
	flag.StringVar(&opts.outDir, "out", "", "output directory for exports (default: configured output dir)")
	flag.StringVar(&opts.vendor, "vendor", "", "force a vendor profile instead of filename detection")
	flag.StringVar(&opts.format, "format", "excel", "export format: excel, csv or both")
	flag.StringVar(&opts.pattern, "pattern", "", "glob restricting the input files, e.g. '진성*.xlsx'")
	flag.BoolVar(&opts.recursive, "recursive", false, "walk month subdirectories under the input directory")
	flag.BoolVar(&opts.daily, "daily", false, "also write one CSV per production date")
	flag.BoolVar(&opts.summary, "summary", false, "also write the per-date summary CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if opts.inDir != "" {
		cfg.Paths.InputDir = opts.inDir
	}
	if opts.outDir != "" {
		cfg.Paths.OutputDir = opts.outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(cfg.GetInputDir()); err != nil {
		logger.Error("Input directory check failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(cfg.GetOutputDir()); err != nil {
		logger.Error("Output directory check failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.DefaultBatchTimeout)
	defer cancel()
	ctx = infrastructure.EnsureTraceID(ctx)

	svc := services.NewReportServiceWithLogger(cfg, logger)
	if err := runBatch(ctx, svc, cfg, opts); err != nil {
		logger.Error("Batch run failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runBatch analyzes the input directory and writes the requested exports.
func runBatch(ctx context.Context, svc *services.ReportService, cfg *config.Config, opts options) error {
	vendor, err := svc.ResolveVendor(opts.vendor)
	if err != nil {
		return err
	}

	var run *services.BatchResult
	if opts.pattern != "" {
		run, err = svc.AnalyzePattern(ctx, "", opts.pattern, vendor)
	} else {
		run, err = svc.AnalyzeDirectory(ctx, "", opts.recursive, vendor)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d file(s): %d record(s), %d invalid row(s), %d excluded row(s)\n",
		run.TotalFiles, run.RecordCount, run.Counters.Invalid, run.Counters.Excluded)
	for _, res := range run.Files {
		if res.Err != nil {
			fmt.Printf("  FAILED %s: %s\n", res.FileName, res.ErrMessage)
			continue
		}
		note := ""
		if res.DateFellBack {
			note = " (date fell back to today)"
		}
		fmt.Printf("  %s [%s]: %d record(s)%s\n",
			res.FileName, res.Vendor, len(res.Records), note)
	}

	if run.RecordCount == 0 {
		return services.ErrNoRecords
	}

	return writeExports(ctx, svc, cfg, opts)
}

func writeExports(ctx context.Context, svc *services.ReportService, cfg *config.Config, opts options) error {
	outDir := cfg.GetOutputDir()

	switch opts.format {
	case "excel", "csv", "both":
	default:
		return fmt.Errorf("%w: unknown format %q", services.ErrInvalidInput, opts.format)
	}

	if opts.format == "excel" || opts.format == "both" {
		path, err := svc.ExportWorkbook(ctx, dataprocessing.Filter{}, "")
		if err != nil {
			return fmt.Errorf("workbook export failed: %w", err)
		}
		fmt.Printf("Workbook written to %s\n", path)
	}
	if opts.format == "csv" || opts.format == "both" {
		path := filepath.Join(outDir, "production_records.csv")
		if err := svc.ExportCSV(path); err != nil {
			return fmt.Errorf("CSV export failed: %w", err)
		}
		fmt.Printf("CSV written to %s\n", path)
	}
	if opts.daily {
		if err := svc.ExportDailyCSV(outDir); err != nil {
			return fmt.Errorf("daily CSV export failed: %w", err)
		}
		fmt.Printf("Daily CSV files written to %s\n", outDir)
	}
	if opts.summary {
		path := filepath.Join(outDir, "production_summary.csv")
		if err := svc.ExportSummaryCSV(path); err != nil {
			return fmt.Errorf("summary export failed: %w", err)
		}
		fmt.Printf("Summary written to %s\n", path)
	}
	return nil
}
