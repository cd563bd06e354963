package exporter

import (
	"fmt"
	"path/filepath"
	"sort"

	"pcreport/internal/config"
	"pcreport/pkg/contracts/domain"
)

// RecordExporter handles CSV output of normalized production records,
// mirroring the workbook contract's column order.
type RecordExporter struct {
	csvWriter *CSVWriter
}

// NewRecordExporter creates a new record exporter writing under baseDir.
func NewRecordExporter(baseDir string) *RecordExporter {
	return &RecordExporter{
		csvWriter: NewCSVWriter(baseDir),
	}
}

// ExportCombinedCSV exports all records to a single CSV file, sorted by
// date then assembly for stable diffs between runs.
func (d *RecordExporter) ExportCombinedCSV(records []domain.ProductionRecord, outputPath string) error {
	sorted := make([]domain.ProductionRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].AssemblyID < sorted[j].AssemblyID
	})

	var csvRecords [][]string
	for _, record := range sorted {
		csvRecords = append(csvRecords, d.recordToCSVRow(record))
	}

	return d.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   d.getHeaders(),
		Records:   csvRecords,
		Append:    false,
		BOMPrefix: true,
	})
}

// ExportDailyCSVFiles generates one CSV file per production date.
func (d *RecordExporter) ExportDailyCSVFiles(records []domain.ProductionRecord, outputDir string) error {
	recordsByDate := make(map[string][]domain.ProductionRecord)
	for _, record := range records {
		recordsByDate[record.Date] = append(recordsByDate[record.Date], record)
	}

	var dates []string
	for date := range recordsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		dayRecords := recordsByDate[date]

		sort.Slice(dayRecords, func(i, j int) bool {
			return dayRecords[i].AssemblyID < dayRecords[j].AssemblyID
		})

		filename := fmt.Sprintf("production_%s.csv", date)
		filePath := filepath.Join(outputDir, filename)

		var csvRecords [][]string
		for _, record := range dayRecords {
			csvRecords = append(csvRecords, d.recordToCSVRow(record))
		}

		if err := d.csvWriter.WriteSimpleCSV(filePath, d.getHeaders(), csvRecords); err != nil {
			return fmt.Errorf("failed to write daily export for %s: %w", date, err)
		}
	}

	return nil
}

// ExportSummaryCSV writes the per-date aggregate view.
func (d *RecordExporter) ExportSummaryCSV(summary []SummaryRow, outputPath string) error {
	var csvRecords [][]string
	for _, row := range summary {
		csvRecords = append(csvRecords, []string{
			row.Date,
			formatQuantity(row.TotalQuantity),
			formatInt(row.AssemblyCount),
		})
	}
	return d.csvWriter.WriteSimpleCSV(outputPath,
		[]string{"Date", "TotalQuantity", "AssemblyCount"}, csvRecords)
}

// SummaryRow is one per-date line of the summary export.
type SummaryRow struct {
	Date          string
	TotalQuantity float64
	AssemblyCount int
}

// getHeaders returns the CSV headers matching the workbook contract.
func (d *RecordExporter) getHeaders() []string {
	return []string{
		config.ExportColAssembly,
		config.ExportColQuantity,
		config.ExportColDate,
	}
}

// recordToCSVRow converts a production record to a CSV row
func (d *RecordExporter) recordToCSVRow(record domain.ProductionRecord) []string {
	return []string{
		record.AssemblyID,
		formatQuantity(record.Quantity),
		record.Date,
	}
}
