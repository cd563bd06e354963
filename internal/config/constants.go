package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "PC Production Report Analyzer"
	AppVersion = "1.0.0"

	// Report file discovery
	ReportFilePattern = `\.xlsx?$`
	LockFilePrefix    = "~$"

	// Export contract: fixed sheet name, column order and widths of the
	// re-exported analysis workbook.
	ExportSheetName      = "생산일보 분석 결과"
	ExportFileNamePrefix = "생산일보_분석결과_"
	ExportColAssembly    = "AssemblyNumber"
	ExportColQuantity    = "Quantity"
	ExportColDate        = "CompletedDate"
	ExportWidthAssembly  = 20.0
	ExportWidthQuantity  = 10.0
	ExportWidthDate      = 12.0

	// File Paths (relative to working directory)
	DefaultInputDir  = "reports"
	DefaultOutputDir = "output"
	DefaultLogsDir   = "logs"

	// Operation Timeouts
	DefaultBatchTimeout = 30 * time.Minute
	DefaultFileTimeout  = 2 * time.Minute

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath     = "/api"
	ReportsEndpoint = "/api/reports"
	HealthEndpoint  = "/health"
)
