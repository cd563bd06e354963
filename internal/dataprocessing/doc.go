// Package dataprocessing is the extraction engine: it turns vendor
// spreadsheet daily production reports into normalized production records.
//
// # Architecture
//
// The engine is a pipeline of small, heuristic stages:
//
//	1. Dispatch: pick a vendor profile from the file name (or an
//	   explicit override)
//	2. DateResolver: find the production date from document text, sheet
//	   name, file name, path or modification time, with a today fallback
//	3. LocateHeader: find the header row and the assembly/quantity
//	   columns by marker scan, pattern fallback or profile defaults
//	4. NormalizeRows: walk data rows, applying exclusion keywords and
//	   id/quantity validation
//	5. Dedupe: collapse duplicate (date, assembly) keys, last write wins
//
// Every stage is driven by declarative VendorProfile data rather than
// per-vendor code; adding a factory means adding a profile entry.
//
// # Usage
//
//	p := dataprocessing.NewProcessor(logger)
//	res := p.ProcessFile(ctx, dataprocessing.MetadataForPath(path), "")
//	records := dataprocessing.Dedupe(res.Records)
//
// Workbooks never fail the whole batch: per-file errors are carried
// inside the FileResult so callers can report per-file outcomes.
package dataprocessing
