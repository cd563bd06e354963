package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcreport/pkg/contracts/domain"
)

func TestNormalizeRowsHappyPath(t *testing.T) {
	p := ProfileFor(domain.VendorUnknown)
	rows := [][]string{
		{"2025년 3월 12일 생산일보"},
		{},
		{"", "부재번호", "규격", "", "", "생산수량(EA)"},
	}
	for i := 0; i < 7; i++ {
		rows = append(rows, []string{
			"", fmt.Sprintf("15-101-%04d", 1001+i), "", "", "", fmt.Sprintf("%d", 10+i),
		})
	}
	rows = append(rows, []string{"", "소계", "", "", "", "73"})
	g := NewGrid(rows)

	pos := LocateHeader(g, p)
	records, counters := NormalizeRows(g, pos, p, "20250312", domain.VendorUnknown)

	require.Len(t, records, 7)
	assert.Equal(t, 7, counters.Processed)
	assert.Equal(t, 1, counters.Excluded)
	assert.Equal(t, 0, counters.Invalid)
	for i, r := range records {
		assert.Equal(t, "20250312", r.Date)
		assert.Equal(t, fmt.Sprintf("15-101-%04d", 1001+i), r.AssemblyID)
		assert.Equal(t, float64(10+i), r.Quantity)
		assert.Greater(t, r.Quantity, 0.0)
	}
}

func TestNormalizeRowsCounters(t *testing.T) {
	p := ProfileFor(domain.VendorIsue)
	pos := HeaderPosition{HeaderRow: 0, AssemblyCol: 1, QuantityCol: 4}
	g := NewGrid([][]string{
		{"", "부재번호", "", "", "금일"},
		{"", "101-201-3001", "", "", "12"},   // valid
		{"", "합계", "", "", "99"},            // excluded keyword
		{"", "제품명", "", "", "5"},            // vendor extra exclusion
		{"", "bad-id", "", "", "7"},          // fails the strict shape
		{"", "101-201-3002", "", "", "0"},    // non-positive quantity
		{"", "101-201-3003", "", "", "메모"},   // non-numeric quantity
		{},                                   // blank row skipped silently
		{"", "101-201-3004", "", "", "1,200"}, // thousands separator
	})

	records, counters := NormalizeRows(g, pos, p, "20250312", domain.VendorIsue)

	require.Len(t, records, 2)
	assert.Equal(t, 2, counters.Processed)
	assert.Equal(t, 2, counters.Excluded)
	assert.Equal(t, 3, counters.Invalid)
	assert.Equal(t, "101-201-3001", records[0].AssemblyID)
	assert.Equal(t, 1200.0, records[1].Quantity)

	for _, r := range records {
		assert.False(t, p.IsExcluded(r.AssemblyID))
		assert.Greater(t, r.Quantity, 0.0)
	}
}

func TestNormalizeRowsQuantityRecovery(t *testing.T) {
	p := ProfileFor(domain.VendorNaraPC)
	require.True(t, p.RecoverQuantity)
	pos := HeaderPosition{HeaderRow: 0, AssemblyCol: 1, QuantityCol: 3}
	g := NewGrid([][]string{
		{"", "부재번호", "", "생산량"},
		// Quantity column blank, value shifted two cells right.
		{"", "15-101-1001", "", "", "", "8"},
		// Nothing numeric anywhere in the row.
		{"", "15-101-1002", "", "", "", "대기"},
	})

	records, counters := NormalizeRows(g, pos, p, "20250312", domain.VendorNaraPC)

	require.Len(t, records, 1)
	assert.Equal(t, 8.0, records[0].Quantity)
	assert.Equal(t, 1, counters.Processed)
	assert.Equal(t, 1, counters.Invalid)
}

func TestNormalizeRowsNoRecoveryForStrictVendors(t *testing.T) {
	p := ProfileFor(domain.VendorJinsungPC)
	require.False(t, p.RecoverQuantity)
	pos := HeaderPosition{HeaderRow: 0, AssemblyCol: 1, QuantityCol: 3}
	g := NewGrid([][]string{
		{"", "부재", "", "생산수량"},
		{"", "15-101-1001", "", "", "", "8"},
	})

	records, counters := NormalizeRows(g, pos, p, "20250312", domain.VendorJinsungPC)

	assert.Empty(t, records)
	assert.Equal(t, 1, counters.Invalid)
}
