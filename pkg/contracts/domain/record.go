package domain

import (
	"fmt"
	"time"
)

// Vendor identifies the factory a production report came from. It is used
// for dispatch and filtering only, never as part of a record's identity.
type Vendor string

const (
	VendorJinsungPC Vendor = "jinsungpc"
	VendorIsue      Vendor = "isue"
	VendorEsueYeoju Vendor = "esue_yeoju"
	VendorJisan     Vendor = "jisan"
	VendorNaraPC    Vendor = "narapc"
	VendorBusanBGF  Vendor = "busanbgf"
	VendorUnknown   Vendor = "unknown"
)

// KnownVendors lists every vendor with a dedicated parsing profile.
var KnownVendors = []Vendor{
	VendorJinsungPC,
	VendorIsue,
	VendorEsueYeoju,
	VendorJisan,
	VendorNaraPC,
	VendorBusanBGF,
}

// IsKnown reports whether v is one of the closed set of known factories.
func (v Vendor) IsKnown() bool {
	for _, k := range KnownVendors {
		if v == k {
			return true
		}
	}
	return false
}

// ProductionRecord is one normalized line item from a daily production
// report: a part was produced in some quantity on some date at some factory.
type ProductionRecord struct {
	// Date is the completion date in canonical YYYYMMDD form, never empty.
	Date string `json:"date" validate:"required,len=8,numeric"`
	// AssemblyID is the trimmed part identifier, never empty.
	AssemblyID string `json:"assembly_id" validate:"required"`
	// Quantity is the produced count, always > 0.
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	// SourceFactory tags the vendor whose report produced this record.
	SourceFactory Vendor `json:"source_factory"`
}

// Key returns the record's identity key. Two records with the same key are
// duplicates; the later-processed one wins during deduplication.
func (r ProductionRecord) Key() string {
	return r.Date + "-" + r.AssemblyID
}

// ParseDate converts the canonical YYYYMMDD date into a time.Time.
func (r ProductionRecord) ParseDate() (time.Time, error) {
	t, err := time.Parse("20060102", r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("record %s has malformed date %q: %w", r.AssemblyID, r.Date, err)
	}
	return t, nil
}

// SheetCounters are the per-sheet diagnostic counts produced while walking
// data rows. They are reporting noise levels, not errors.
type SheetCounters struct {
	Processed int `json:"processed"`
	Invalid   int `json:"invalid"`
	Excluded  int `json:"excluded"`
}

// Add accumulates another sheet's counters into c.
func (c *SheetCounters) Add(other SheetCounters) {
	c.Processed += other.Processed
	c.Invalid += other.Invalid
	c.Excluded += other.Excluded
}

// FileResult is the outcome of processing one workbook file.
type FileResult struct {
	FileName     string             `json:"file_name"`
	Vendor       Vendor             `json:"vendor"`
	Records      []ProductionRecord `json:"records"`
	Counters     SheetCounters      `json:"counters"`
	DateFellBack bool               `json:"date_fell_back"`
	Err          error              `json:"-"`
	ErrMessage   string             `json:"error,omitempty"`
}

// FileMetadata is the minimal file identity the extraction engine needs:
// the name and path may embed date tokens, the modification time is a
// weak fallback date source.
type FileMetadata struct {
	Name         string
	Path         string
	LastModified time.Time
}
