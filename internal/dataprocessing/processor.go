package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "pcreport/internal/errors"
	"pcreport/pkg/contracts/domain"
)

// minSheetRows is the smallest sheet worth parsing: anything shorter cannot
// hold a header and a data row.
const minSheetRows = 3

// Processor turns one workbook file into normalized production records. It
// is stateless and safe for concurrent use.
type Processor struct {
	logger *slog.Logger
	dates  *DateResolver
}

// NewProcessor creates a processor. A nil logger falls back to the default.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger.With(slog.String("component", "processor")),
		dates:  NewDateResolver(),
	}
}

// WithDateResolver replaces the date resolver, used by tests to pin the
// clock.
func (p *Processor) WithDateResolver(r *DateResolver) *Processor {
	p.dates = r
	return p
}

// ProcessFile parses the workbook at path. The explicit vendor overrides
// filename detection when known. Open and read failures are returned inside
// the FileResult so a batch run can report per-file outcomes.
func (p *Processor) ProcessFile(ctx context.Context, meta domain.FileMetadata, explicit domain.Vendor) domain.FileResult {
	f, err := excelize.OpenFile(meta.Path)
	if err != nil {
		return p.failedResult(meta, explicit, apperrors.NewParsingError(
			fmt.Sprintf("failed to open workbook %s", meta.Name), err))
	}
	defer f.Close()
	return p.process(ctx, f, meta, explicit)
}

// ProcessReader parses a workbook from a stream, for uploads that never
// touch disk. The metadata name still drives vendor and date heuristics.
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader, meta domain.FileMetadata, explicit domain.Vendor) domain.FileResult {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return p.failedResult(meta, explicit, apperrors.NewParsingError(
			fmt.Sprintf("failed to read workbook %s", meta.Name), err))
	}
	defer f.Close()
	return p.process(ctx, f, meta, explicit)
}

func (p *Processor) failedResult(meta domain.FileMetadata, explicit domain.Vendor, err error) domain.FileResult {
	_, vendor := Dispatch(meta, explicit)
	return domain.FileResult{
		FileName:   meta.Name,
		Vendor:     vendor,
		Err:        err,
		ErrMessage: err.Error(),
	}
}

func (p *Processor) process(ctx context.Context, f *excelize.File, meta domain.FileMetadata, explicit domain.Vendor) domain.FileResult {
	profile, vendor := Dispatch(meta, explicit)
	result := domain.FileResult{FileName: meta.Name, Vendor: vendor}

	log := p.logger.With(
		slog.String("file", meta.Name),
		slog.String("vendor", string(vendor)),
	)

	var fileDate *DateResolution
	for _, sheetName := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			result.Err = err
			result.ErrMessage = err.Error()
			return result
		}
		if profile.SkipSheet(sheetName) {
			log.Debug("skipping non-data sheet", slog.String("sheet", sheetName))
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			log.Warn("failed to read sheet",
				slog.String("sheet", sheetName),
				slog.String("error", err.Error()))
			continue
		}
		grid := NewGrid(rows)
		if grid.RowCount() < minSheetRows {
			log.Debug("skipping short sheet",
				slog.String("sheet", sheetName),
				slog.Int("rows", grid.RowCount()))
			continue
		}

		var date DateResolution
		if profile.PerSheetDates || fileDate == nil {
			date = p.dates.Resolve(grid, sheetName, meta)
			if fileDate == nil {
				fileDate = &date
			}
		} else {
			date = *fileDate
		}
		if date.FellBack {
			result.DateFellBack = true
		}

		pos := LocateHeader(grid, profile)
		records, counters := NormalizeRows(grid, pos, profile, date.Date, vendor)
		result.Records = append(result.Records, records...)
		result.Counters.Add(counters)

		log.Info("sheet processed",
			slog.String("sheet", sheetName),
			slog.String("date", date.Date),
			slog.String("date_source", date.Source.String()),
			slog.String("header_method", string(pos.Method)),
			slog.Int("processed", counters.Processed),
			slog.Int("invalid", counters.Invalid),
			slog.Int("excluded", counters.Excluded))

		if !profile.MultiSheet {
			break
		}
	}

	if result.Counters == (domain.SheetCounters{}) {
		log.Warn("no data rows found in workbook")
	}
	return result
}

// MetadataForPath builds file metadata from a path, tolerating stat failure
// (the modification time is only a weak date fallback).
func MetadataForPath(path string) domain.FileMetadata {
	meta := domain.FileMetadata{
		Name: filepath.Base(path),
		Path: path,
	}
	if info, err := os.Stat(path); err == nil {
		meta.LastModified = info.ModTime()
	}
	return meta
}
