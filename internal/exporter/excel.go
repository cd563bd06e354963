package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"pcreport/internal/config"
	apperrors "pcreport/internal/errors"
	"pcreport/pkg/contracts/domain"
)

// ExcelExporter re-exports normalized production records as an analysis
// workbook. The output layout is a fixed contract consumed by downstream
// ERP imports: sheet name, column order and widths never change.
type ExcelExporter struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExcelExporter creates an exporter. A nil logger falls back to the
// default.
func NewExcelExporter(logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{
		logger: logger.With(slog.String("component", "excel_exporter")),
		now:    time.Now,
	}
}

// WithClock pins the clock used for default file names, for tests.
func (e *ExcelExporter) WithClock(now func() time.Time) *ExcelExporter {
	e.now = now
	return e
}

// DefaultFileName returns the dated default output name,
// e.g. 생산일보_분석결과_20250312.xlsx.
func (e *ExcelExporter) DefaultFileName() string {
	return fmt.Sprintf("%s%s.xlsx", config.ExportFileNamePrefix, e.now().Format("20060102"))
}

// BuildWorkbook renders the records into a new workbook following the
// export contract. Records are written in the order given; callers sort
// and dedupe first.
func (e *ExcelExporter) BuildWorkbook(records []domain.ProductionRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := config.ExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, apperrors.NewExportError("failed to name export sheet", err)
	}

	headers := []interface{}{
		config.ExportColAssembly,
		config.ExportColQuantity,
		config.ExportColDate,
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		f.Close()
		return nil, apperrors.NewExportError("failed to write header row", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, apperrors.NewExportError("failed to address row", err)
		}
		row := []interface{}{r.AssemblyID, r.Quantity, r.Date}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, apperrors.NewExportError(
				fmt.Sprintf("failed to write record row %d", i+2), err)
		}
	}

	type width struct {
		col string
		w   float64
	}
	for _, cw := range []width{
		{"A", config.ExportWidthAssembly},
		{"B", config.ExportWidthQuantity},
		{"C", config.ExportWidthDate},
	} {
		if err := f.SetColWidth(sheet, cw.col, cw.col, cw.w); err != nil {
			f.Close()
			return nil, apperrors.NewExportError("failed to set column width", err)
		}
	}

	return f, nil
}

// ExportWorkbook writes the analysis workbook into dir and returns its
// full path. An empty fileName picks the dated default.
func (e *ExcelExporter) ExportWorkbook(records []domain.ProductionRecord, dir, fileName string) (string, error) {
	if fileName == "" {
		fileName = e.DefaultFileName()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err)
	}

	f, err := e.BuildWorkbook(records)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", apperrors.NewExportError(
			fmt.Sprintf("failed to save workbook %s", fileName), err)
	}

	e.logger.Info("workbook exported",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return path, nil
}

// WriteWorkbook streams the analysis workbook to w, for HTTP downloads
// that never touch disk.
func (e *ExcelExporter) WriteWorkbook(records []domain.ProductionRecord, w io.Writer) error {
	f, err := e.BuildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return apperrors.NewExportError("failed to stream workbook", err)
	}
	return nil
}
