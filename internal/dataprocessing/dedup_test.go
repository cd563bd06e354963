package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcreport/pkg/contracts/domain"
)

func rec(date, id string, qty float64) domain.ProductionRecord {
	return domain.ProductionRecord{
		Date:          date,
		AssemblyID:    id,
		Quantity:      qty,
		SourceFactory: domain.VendorJinsungPC,
	}
}

func TestDedupeLastWriteWins(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250312", "15-101-1001", 10),
		rec("20250312", "15-101-1002", 5),
		rec("20250312", "15-101-1001", 12), // corrected re-processing
	}

	out := Dedupe(records)

	require.Len(t, out, 2)
	assert.Equal(t, "15-101-1001", out[0].AssemblyID)
	assert.Equal(t, 12.0, out[0].Quantity)
	assert.Equal(t, "15-101-1002", out[1].AssemblyID)
}

func TestDedupeIdempotent(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250313", "15-101-1002", 5),
		rec("20250312", "15-101-1001", 10),
		rec("20250312", "15-101-1001", 12),
	}

	once := Dedupe(records)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupeSortsByDateThenAssembly(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250313", "15-101-1001", 1),
		rec("20250312", "15-101-1002", 2),
		rec("20250312", "15-101-1001", 3),
	}

	out := Dedupe(records)

	require.Len(t, out, 3)
	assert.Equal(t, "20250312", out[0].Date)
	assert.Equal(t, "15-101-1001", out[0].AssemblyID)
	assert.Equal(t, "15-101-1002", out[1].AssemblyID)
	assert.Equal(t, "20250313", out[2].Date)
}

func TestDedupeKeepsSameAssemblyAcrossDates(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250312", "15-101-1001", 10),
		rec("20250313", "15-101-1001", 8),
	}
	assert.Len(t, Dedupe(records), 2)
}

func TestMerge(t *testing.T) {
	results := []domain.FileResult{
		{Records: []domain.ProductionRecord{rec("20250312", "a", 1)}},
		{},
		{Records: []domain.ProductionRecord{rec("20250312", "b", 2), rec("20250313", "a", 3)}},
	}
	merged := Merge(results)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].AssemblyID)
	assert.Equal(t, "b", merged[1].AssemblyID)
}

func TestFilterApply(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250312", "15-101-1001", 10),
		rec("20250312", "W-201-3001", 5),
		rec("20250313", "15-101-1002", 7),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty filter keeps all", filter: Filter{}, want: []string{"15-101-1001", "W-201-3001", "15-101-1002"}},
		{name: "all date keeps all", filter: Filter{Date: "all"}, want: []string{"15-101-1001", "W-201-3001", "15-101-1002"}},
		{name: "single date", filter: Filter{Date: "20250313"}, want: []string{"15-101-1002"}},
		{name: "assembly substring case-insensitive", filter: Filter{AssemblySubstring: "w-201"}, want: []string{"W-201-3001"}},
		{name: "exclusion fragments", filter: Filter{ExcludeSubstrings: []string{"15-101"}}, want: []string{"W-201-3001"}},
		{name: "combined", filter: Filter{Date: "20250312", AssemblySubstring: "15-101"}, want: []string{"15-101-1001"}},
		{name: "vendor match keeps all", filter: Filter{Vendor: domain.VendorJinsungPC}, want: []string{"15-101-1001", "W-201-3001", "15-101-1002"}},
		{name: "vendor mismatch drops all", filter: Filter{Vendor: domain.VendorIsue}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.AssemblyID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortRecords(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250313", "b", 2),
		rec("20250312", "a", 10),
		rec("20250312", "c", 5),
	}

	SortRecords(records, SortByQuantity, false)
	assert.Equal(t, 2.0, records[0].Quantity)
	assert.Equal(t, 10.0, records[2].Quantity)

	SortRecords(records, SortByQuantity, true)
	assert.Equal(t, 10.0, records[0].Quantity)

	SortRecords(records, SortByDate, false)
	assert.Equal(t, "20250312", records[0].Date)

	SortRecords(records, SortByAssembly, false)
	assert.Equal(t, "a", records[0].AssemblyID)
}

func TestUniqueDates(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250313", "a", 1),
		rec("20250312", "b", 2),
		rec("20250313", "c", 3),
	}
	assert.Equal(t, []string{"20250312", "20250313"}, UniqueDates(records))
}

func TestSummarize(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250312", "a", 10),
		rec("20250312", "b", 5),
		rec("20250313", "a", 7),
	}

	s := Summarize(records)

	require.Len(t, s.Dates, 2)
	assert.Equal(t, "20250312", s.Dates[0].Date)
	assert.Equal(t, 15.0, s.Dates[0].TotalQuantity)
	assert.Equal(t, 2, s.Dates[0].AssemblyCount)
	assert.Equal(t, "20250313", s.Dates[1].Date)
	assert.Equal(t, 7.0, s.Dates[1].TotalQuantity)
	assert.Equal(t, 1, s.Dates[1].AssemblyCount)
	assert.Equal(t, 22.0, s.TotalQuantity)
	assert.Equal(t, 2, s.TotalAssemblies)
}

func TestProgressByAssembly(t *testing.T) {
	records := []domain.ProductionRecord{
		rec("20250312", "a", 10),
		rec("20250313", "a", 10),
		rec("20250312", "b", 5),
	}

	out := ProgressByAssembly(records)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].AssemblyID)
	assert.Equal(t, 20.0, out[0].Quantity)
	assert.InDelta(t, 0.8, out[0].Share, 1e-9)
	assert.Equal(t, "b", out[1].AssemblyID)
	assert.InDelta(t, 0.2, out[1].Share, 1e-9)
}

func TestProgressByAssemblyEmpty(t *testing.T) {
	assert.Empty(t, ProgressByAssembly(nil))
}
