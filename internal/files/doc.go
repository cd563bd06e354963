// Package files provides file system discovery utilities for locating
// vendor production report workbooks.
//
// Discovery finds spreadsheet files in a directory (optionally recursively,
// since factories file reports under per-month subdirectories), skipping
// Office lock files, and exposes utilities for filtering by modification
// time and finding the latest file.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	reports, err := discovery.FindReportFiles("reports")
package files
