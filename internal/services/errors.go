package services

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP problem
// responses; the CLI prints them directly.
var (
	// Discovery errors
	ErrNoFilesFound = errors.New("no report files found")

	// Analysis errors
	ErrUnknownVendor = errors.New("unknown vendor")
	ErrNoRecords     = errors.New("no production records available")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
