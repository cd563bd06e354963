package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcreport/pkg/contracts/domain"
)

func TestProfileForKnownVendors(t *testing.T) {
	for _, v := range domain.KnownVendors {
		p := ProfileFor(v)
		require.NotNil(t, p, v)
		assert.Equal(t, v, p.Vendor)
		assert.NotEmpty(t, p.AssemblyMarkers, v)
		assert.NotEmpty(t, p.QuantityMarkers, v)
		assert.LessOrEqual(t, p.QuantityOffsetMin, p.QuantityOffsetMax, v)
	}
}

func TestProfileForUnknown(t *testing.T) {
	p := ProfileFor("something-else")
	assert.Equal(t, domain.VendorUnknown, p.Vendor)
}

func TestIsExcluded(t *testing.T) {
	p := ProfileFor(domain.VendorIsue)

	tests := []struct {
		id   string
		want bool
	}{
		{id: "소계", want: true},
		{id: "당일 합계", want: true},
		{id: "Grand Total", want: true},
		{id: "SUBTOTAL", want: true},
		{id: "제품명", want: true}, // vendor extra
		{id: "페이지 1/2", want: true},
		{id: "101-201-3001", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsExcluded(tt.id))
		})
	}

	// Vendor extras stay vendor-local.
	assert.False(t, ProfileFor(domain.VendorJinsungPC).IsExcluded("제품명"))
}

func TestSkipSheet(t *testing.T) {
	p := ProfileFor(domain.VendorEsueYeoju)
	assert.True(t, p.SkipSheet("사용금지"))
	assert.True(t, p.SkipSheet("양식 (원본)"))
	assert.True(t, p.SkipSheet("폐기분"))
	assert.False(t, p.SkipSheet("0312"))

	// Single-sheet vendors never skip by name.
	assert.False(t, ProfileFor(domain.VendorJinsungPC).SkipSheet("사용금지"))
}

func TestValidID(t *testing.T) {
	strict := ProfileFor(domain.VendorIsue)
	assert.True(t, strict.ValidID("101-201-3001"))
	assert.False(t, strict.ValidID("10-201-3001"))
	assert.False(t, strict.ValidID("slab-a"))

	open := ProfileFor(domain.VendorUnknown)
	assert.True(t, open.ValidID("anything"))
}
