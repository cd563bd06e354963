package dataprocessing

import (
	"sort"
	"strings"

	"pcreport/pkg/contracts/domain"
)

// Merge concatenates the record slices of several file results in order.
// Order matters: Dedupe gives later entries precedence.
func Merge(results []domain.FileResult) []domain.ProductionRecord {
	var out []domain.ProductionRecord
	for _, res := range results {
		out = append(out, res.Records...)
	}
	return out
}

// Dedupe collapses records sharing a (date, assembly) key, keeping the
// last-seen one so re-processing a corrected report overwrites the stale
// entry. The result is sorted by date ascending, then assembly id, giving
// the operation a stable, idempotent output.
func Dedupe(records []domain.ProductionRecord) []domain.ProductionRecord {
	index := make(map[string]int, len(records))
	out := make([]domain.ProductionRecord, 0, len(records))
	for _, r := range records {
		if i, seen := index[r.Key()]; seen {
			out[i] = r
			continue
		}
		index[r.Key()] = len(out)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].AssemblyID < out[j].AssemblyID
	})
	return out
}

// Filter selects records for display and export. Zero values select
// everything: an empty Date (or "all") keeps every date, an empty substring
// keeps every assembly.
type Filter struct {
	// Date keeps only records of one YYYYMMDD date. "" or "all" disables.
	Date string
	// AssemblySubstring keeps records whose id contains the fragment,
	// case-insensitively.
	AssemblySubstring string
	// ExcludeSubstrings drops records whose id contains any fragment.
	ExcludeSubstrings []string
	// Vendor keeps only records from one source factory. Empty keeps all.
	Vendor domain.Vendor
}

// Apply returns the records passing every criterion, preserving order.
func (f Filter) Apply(records []domain.ProductionRecord) []domain.ProductionRecord {
	out := make([]domain.ProductionRecord, 0, len(records))
	frag := strings.ToLower(f.AssemblySubstring)
	for _, r := range records {
		if f.Date != "" && f.Date != "all" && r.Date != f.Date {
			continue
		}
		id := strings.ToLower(r.AssemblyID)
		if frag != "" && !strings.Contains(id, frag) {
			continue
		}
		if containsAny(id, f.ExcludeSubstrings) {
			continue
		}
		if f.Vendor != "" && r.SourceFactory != f.Vendor {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsAny(id string, frags []string) bool {
	for _, frag := range frags {
		if frag == "" {
			continue
		}
		if strings.Contains(id, strings.ToLower(frag)) {
			return true
		}
	}
	return false
}

// SortKey names a sortable record column.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByAssembly SortKey = "assembly"
	SortByQuantity SortKey = "quantity"
)

// SortRecords orders records by one column. Quantity compares numerically;
// date and assembly compare lexicographically, which for YYYYMMDD dates is
// chronological. The sort is stable so equal keys keep their relative order.
func SortRecords(records []domain.ProductionRecord, key SortKey, descending bool) {
	less := func(a, b domain.ProductionRecord) bool {
		switch key {
		case SortByQuantity:
			return a.Quantity < b.Quantity
		case SortByAssembly:
			return a.AssemblyID < b.AssemblyID
		default:
			return a.Date < b.Date
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// UniqueDates returns the distinct dates present, ascending.
func UniqueDates(records []domain.ProductionRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		out = append(out, r.Date)
	}
	sort.Strings(out)
	return out
}

// DateSummary is one date's aggregate line in the summary view.
type DateSummary struct {
	Date          string  `json:"date"`
	TotalQuantity float64 `json:"total_quantity"`
	AssemblyCount int     `json:"assembly_count"`
}

// Summary aggregates a record set per date plus grand totals.
type Summary struct {
	Dates           []DateSummary `json:"dates"`
	TotalQuantity   float64       `json:"total_quantity"`
	TotalAssemblies int           `json:"total_assemblies"`
}

// Summarize builds the per-date quantity subtotals and distinct-assembly
// counts used by the summary views.
func Summarize(records []domain.ProductionRecord) Summary {
	type acc struct {
		quantity   float64
		assemblies map[string]struct{}
	}
	byDate := make(map[string]*acc)
	allAssemblies := make(map[string]struct{})
	var total float64

	for _, r := range records {
		a, ok := byDate[r.Date]
		if !ok {
			a = &acc{assemblies: make(map[string]struct{})}
			byDate[r.Date] = a
		}
		a.quantity += r.Quantity
		a.assemblies[r.AssemblyID] = struct{}{}
		allAssemblies[r.AssemblyID] = struct{}{}
		total += r.Quantity
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	s := Summary{
		TotalQuantity:   total,
		TotalAssemblies: len(allAssemblies),
	}
	for _, d := range dates {
		a := byDate[d]
		s.Dates = append(s.Dates, DateSummary{
			Date:          d,
			TotalQuantity: a.quantity,
			AssemblyCount: len(a.assemblies),
		})
	}
	return s
}

// AssemblyProgress is one assembly's cumulative share of the set's total
// quantity, for production-progress views.
type AssemblyProgress struct {
	AssemblyID string  `json:"assembly_id"`
	Quantity   float64 `json:"quantity"`
	Share      float64 `json:"share"`
}

// ProgressByAssembly totals quantity per assembly and computes each
// assembly's share of the grand total, ordered by quantity descending.
func ProgressByAssembly(records []domain.ProductionRecord) []AssemblyProgress {
	totals := make(map[string]float64)
	var grand float64
	for _, r := range records {
		totals[r.AssemblyID] += r.Quantity
		grand += r.Quantity
	}
	out := make([]AssemblyProgress, 0, len(totals))
	for id, q := range totals {
		p := AssemblyProgress{AssemblyID: id, Quantity: q}
		if grand > 0 {
			p.Share = q / grand
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].AssemblyID < out[j].AssemblyID
	})
	return out
}
