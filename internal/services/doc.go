// Package services implements the business logic layer between the HTTP
// handlers / CLI and the extraction engine.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
//	- ReportService: batch workbook analysis, record queries and exports
//	- HealthService: system health checks
//
// # Common Service Pattern
//
// Services typically follow this structure:
//
//	svc := services.NewReportServiceWithLogger(cfg, logger)
//	run, err := svc.AnalyzeDirectory(ctx, "", true, "")
//	if err != nil {
//	    return err
//	}
//	records := svc.Records(dataprocessing.Filter{}, dataprocessing.SortByDate, false)
//
// # Error Handling
//
// Services return the sentinel errors in errors.go; handlers translate
// them into RFC 7807 problem responses, the CLI prints them directly.
package services
