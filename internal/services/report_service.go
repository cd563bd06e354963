package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pcreport/internal/config"
	"pcreport/internal/dataprocessing"
	"pcreport/internal/exporter"
	"pcreport/internal/files"
	"pcreport/pkg/contracts/domain"
)

// ReportService orchestrates a batch extraction run: discover workbook
// files, parse them concurrently, merge and dedupe the records, and keep
// the result in memory for queries and exports. All methods are safe for
// concurrent use.
type ReportService struct {
	config    *config.Config
	logger    *slog.Logger
	processor *dataprocessing.Processor
	discovery *files.Discovery
	excel     *exporter.ExcelExporter
	csv       *exporter.RecordExporter

	mu      sync.RWMutex
	records []domain.ProductionRecord
	lastRun *BatchResult
}

// BatchResult summarizes one extraction run over a set of files.
type BatchResult struct {
	StartedAt    time.Time            `json:"started_at"`
	ElapsedMS    int64                `json:"elapsed_ms"`
	Files        []domain.FileResult  `json:"files"`
	TotalFiles   int                  `json:"total_files"`
	Failed       int                  `json:"failed"`
	Counters     domain.SheetCounters `json:"counters"`
	RecordCount  int                  `json:"record_count"`
	DateFellBack int                  `json:"date_fallbacks"`
}

// NewReportService creates a new report service using the default logger.
func NewReportService(cfg *config.Config) *ReportService {
	return NewReportServiceWithLogger(cfg, slog.Default())
}

// NewReportServiceWithLogger creates a new report service with a specific
// logger.
func NewReportServiceWithLogger(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("ReportService initialized",
		slog.String("input_dir", cfg.GetInputDir()),
		slog.String("output_dir", cfg.GetOutputDir()),
		slog.Int("workers", cfg.Processing.EffectiveWorkers()))

	return &ReportService{
		config:    cfg,
		logger:    logger.With(slog.String("component", "report_service")),
		processor: dataprocessing.NewProcessor(logger),
		discovery: files.NewDiscovery(cfg.GetInputDir()),
		excel:     exporter.NewExcelExporter(logger),
		csv:       exporter.NewRecordExporter(cfg.GetOutputDir()),
	}
}

// WithProcessor swaps the workbook processor, used by tests to pin the
// date resolver's clock.
func (s *ReportService) WithProcessor(p *dataprocessing.Processor) *ReportService {
	s.processor = p
	return s
}

// ResolveVendor maps a user-supplied vendor name onto a known vendor. An
// empty name falls back to the configured default vendor, or automatic
// filename detection when no default is set.
func (s *ReportService) ResolveVendor(name string) (domain.Vendor, error) {
	if name == "" {
		name = s.config.Processing.DefaultVendor
	}
	if name == "" {
		return "", nil
	}
	v := domain.Vendor(name)
	if !v.IsKnown() {
		return "", fmt.Errorf("%w: %s", ErrUnknownVendor, name)
	}
	return v, nil
}

// AnalyzeDirectory discovers workbook files under dir and runs a batch
// analysis over them. An empty dir uses the configured input directory.
// Recursive discovery keeps "YY년 M월" folder names in the path so date
// heuristics can use them.
func (s *ReportService) AnalyzeDirectory(ctx context.Context, dir string, recursive bool, vendor domain.Vendor) (*BatchResult, error) {
	if dir == "" {
		dir = s.config.GetInputDir()
	}

	var (
		found []files.FileInfo
		err   error
	)
	if recursive {
		found, err = s.discovery.FindReportFilesRecursive(dir)
	} else {
		found, err = s.discovery.FindReportFiles(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFilesFound, dir)
	}

	metas := make([]domain.FileMetadata, len(found))
	for i, f := range found {
		metas[i] = f.Metadata()
	}
	return s.AnalyzeFiles(ctx, metas, vendor)
}

// AnalyzePattern runs a batch analysis over the workbooks matching a glob
// pattern under dir, e.g. "진성*.xlsx" to reprocess one factory only. An
// empty dir uses the configured input directory.
func (s *ReportService) AnalyzePattern(ctx context.Context, dir, pattern string, vendor domain.Vendor) (*BatchResult, error) {
	if dir == "" {
		dir = s.config.GetInputDir()
	}

	found, err := s.discovery.FindFilesByPattern(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w matching %q in %s", ErrNoFilesFound, pattern, dir)
	}

	metas := make([]domain.FileMetadata, len(found))
	for i, f := range found {
		metas[i] = f.Metadata()
	}
	return s.AnalyzeFiles(ctx, metas, vendor)
}

// AnalyzeFiles parses the given workbooks concurrently and replaces the
// in-memory record set with the merged, deduplicated result. Files are
// processed in the order given; on duplicate (date, assembly) keys the
// later file wins, so callers pass files oldest first.
func (s *ReportService) AnalyzeFiles(ctx context.Context, metas []domain.FileMetadata, vendor domain.Vendor) (*BatchResult, error) {
	if len(metas) == 0 {
		return nil, ErrNoFilesFound
	}

	started := time.Now()
	results := make([]domain.FileResult, len(metas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Processing.EffectiveWorkers())
	for i, meta := range metas {
		i, meta := i, meta
		g.Go(func() error {
			fctx := gctx
			if timeout := s.config.Processing.FileTimeout; timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}
			// Parse failures stay inside the result so one broken
			// workbook never aborts the batch.
			results[i] = s.processor.ProcessFile(fctx, meta, vendor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := dataprocessing.Dedupe(dataprocessing.Merge(results))

	run := s.summarize(started, results, len(records))
	s.mu.Lock()
	s.records = records
	s.lastRun = run
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "batch analysis complete",
		slog.Int("files", run.TotalFiles),
		slog.Int("failed", run.Failed),
		slog.Int("records", run.RecordCount),
		slog.Int("invalid_rows", run.Counters.Invalid),
		slog.Int("excluded_rows", run.Counters.Excluded),
		slog.Int64("elapsed_ms", run.ElapsedMS))
	return run, nil
}

// AnalyzeUpload parses a single uploaded workbook and merges its records
// into the current set, overwriting stale entries that share a
// (date, assembly) key. The file name still drives vendor and date
// heuristics.
func (s *ReportService) AnalyzeUpload(ctx context.Context, r io.Reader, fileName string, vendor domain.Vendor) (domain.FileResult, error) {
	meta := domain.FileMetadata{
		Name:         fileName,
		LastModified: time.Now(),
	}
	result := s.processor.ProcessReader(ctx, r, meta, vendor)
	if result.Err != nil {
		return result, result.Err
	}

	s.mu.Lock()
	s.records = dataprocessing.Dedupe(append(s.records, result.Records...))
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "upload analyzed",
		slog.String("file", fileName),
		slog.String("vendor", string(result.Vendor)),
		slog.Int("records", len(result.Records)))
	return result, nil
}

func (s *ReportService) summarize(started time.Time, results []domain.FileResult, recordCount int) *BatchResult {
	run := &BatchResult{
		StartedAt:   started,
		ElapsedMS:   time.Since(started).Milliseconds(),
		Files:       results,
		TotalFiles:  len(results),
		RecordCount: recordCount,
	}
	for _, res := range results {
		if res.Err != nil {
			run.Failed++
		}
		if res.DateFellBack {
			run.DateFellBack++
		}
		run.Counters.Add(res.Counters)
	}
	return run
}

// Records returns the records passing the filter, ordered by the sort
// key. The returned slice is a copy; callers may mutate it freely.
func (s *ReportService) Records(filter dataprocessing.Filter, key dataprocessing.SortKey, descending bool) []domain.ProductionRecord {
	out := filter.Apply(s.snapshot())
	dataprocessing.SortRecords(out, key, descending)
	return out
}

// AllRecords returns a copy of every stored record in canonical order.
func (s *ReportService) AllRecords() []domain.ProductionRecord {
	return s.snapshot()
}

// Dates returns the distinct production dates present, ascending.
func (s *ReportService) Dates() []string {
	return dataprocessing.UniqueDates(s.snapshot())
}

// Summary aggregates the filtered record set per date.
func (s *ReportService) Summary(filter dataprocessing.Filter) dataprocessing.Summary {
	return dataprocessing.Summarize(filter.Apply(s.snapshot()))
}

// Progress totals quantity per assembly across the filtered set.
func (s *ReportService) Progress(filter dataprocessing.Filter) []dataprocessing.AssemblyProgress {
	return dataprocessing.ProgressByAssembly(filter.Apply(s.snapshot()))
}

// LastRun returns the most recent batch summary, or nil before any run.
func (s *ReportService) LastRun() *BatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// Reset drops all stored records and the last run summary.
func (s *ReportService) Reset() {
	s.mu.Lock()
	s.records = nil
	s.lastRun = nil
	s.mu.Unlock()
}

func (s *ReportService) snapshot() []domain.ProductionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProductionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ExportWorkbook writes the analysis workbook for the filtered records
// into the output directory and returns its path. An empty fileName picks
// the dated default name.
func (s *ReportService) ExportWorkbook(ctx context.Context, filter dataprocessing.Filter, fileName string) (string, error) {
	records := filter.Apply(s.snapshot())
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	path, err := s.excel.ExportWorkbook(records, s.config.GetOutputDir(), fileName)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "workbook export complete",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return path, nil
}

// WriteWorkbook streams the analysis workbook for the filtered records to
// w, for HTTP downloads.
func (s *ReportService) WriteWorkbook(filter dataprocessing.Filter, w io.Writer) error {
	records := filter.Apply(s.snapshot())
	if len(records) == 0 {
		return ErrNoRecords
	}
	return s.excel.WriteWorkbook(records, w)
}

// ExportCSV writes every stored record to one combined CSV file.
func (s *ReportService) ExportCSV(path string) error {
	records := s.snapshot()
	if len(records) == 0 {
		return ErrNoRecords
	}
	return s.csv.ExportCombinedCSV(records, path)
}

// ExportDailyCSV writes one CSV file per production date into dir.
func (s *ReportService) ExportDailyCSV(dir string) error {
	records := s.snapshot()
	if len(records) == 0 {
		return ErrNoRecords
	}
	return s.csv.ExportDailyCSVFiles(records, dir)
}

// ExportSummaryCSV writes the per-date aggregate view to path.
func (s *ReportService) ExportSummaryCSV(path string) error {
	summary := dataprocessing.Summarize(s.snapshot())
	if len(summary.Dates) == 0 {
		return ErrNoRecords
	}
	rows := make([]exporter.SummaryRow, 0, len(summary.Dates))
	for _, d := range summary.Dates {
		rows = append(rows, exporter.SummaryRow{
			Date:          d.Date,
			TotalQuantity: d.TotalQuantity,
			AssemblyCount: d.AssemblyCount,
		})
	}
	return s.csv.ExportSummaryCSV(rows, path)
}
