// Package exporter writes normalized production records back out as files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// RecordExporter: CSV exports of production records — combined, per-date
// and per-date summary files — in the same column order as the workbook
// contract.
//
// ExcelExporter: The analysis workbook re-export. Its sheet name, column
// order (AssemblyNumber, Quantity, CompletedDate) and column widths are a
// fixed contract consumed by downstream imports.
//
// Example usage:
//
//	ex := exporter.NewExcelExporter(logger)
//	path, err := ex.ExportWorkbook(records, cfg.GetOutputDir(), "")
package exporter
