package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcreport/pkg/contracts/domain"
)

func TestLocateHeaderByMarker(t *testing.T) {
	p := ProfileFor(domain.VendorUnknown)
	g := NewGrid([][]string{
		{"생산일보"},
		{},
		{"", "부재번호", "규격", "", "", "생산수량(EA)"},
		{"", "15-101-1001", "", "", "", "12"},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByMarker, pos.Method)
	assert.Equal(t, 2, pos.HeaderRow)
	assert.Equal(t, 1, pos.AssemblyCol)
	assert.Equal(t, 5, pos.QuantityCol)
}

func TestLocateHeaderCombinedTwoRow(t *testing.T) {
	p := ProfileFor(domain.VendorIsue)
	g := NewGrid([][]string{
		{"이수이앤씨 생산일보"},
		{"", "부재번호", "제품명", "수량(매)"},
		{"", "", "", "전일", "금일", "누계"},
		{"", "101-201-3001", "slab", "40", "12", "52"},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByMarker, pos.Method)
	assert.Equal(t, 1, pos.HeaderRow)
	assert.Equal(t, 1, pos.AssemblyCol)
	// Real quantity column carries the 금일 sub-label one row below.
	assert.Equal(t, 4, pos.QuantityCol)
}

func TestLocateHeaderByPattern(t *testing.T) {
	p := ProfileFor(domain.VendorUnknown)
	g := NewGrid([][]string{
		{"공장 생산 현황"},
		{},
		{"", "", "15-101-1001", "", "12"},
		{"", "", "15-101-1002", "", "8"},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByPattern, pos.Method)
	assert.Equal(t, 1, pos.HeaderRow)
	assert.Equal(t, 2, pos.AssemblyCol)
	assert.Equal(t, 4, pos.QuantityCol)
}

func TestLocateHeaderPatternOffsetProbe(t *testing.T) {
	p := ProfileFor(domain.VendorUnknown)
	// No number inside the offset window; the probe falls back to the
	// window minimum.
	g := NewGrid([][]string{
		{"", "15-101-1001", "비고", "", "", "", "", "", ""},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByPattern, pos.Method)
	assert.Equal(t, 0, pos.HeaderRow)
	assert.Equal(t, 1, pos.AssemblyCol)
	assert.Equal(t, 1+p.QuantityOffsetMin, pos.QuantityCol)
}

func TestLocateHeaderDefaults(t *testing.T) {
	p := ProfileFor(domain.VendorJinsungPC)
	g := NewGrid([][]string{
		{"제목 없는 문서"},
		{"아무 내용"},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByDefault, pos.Method)
	assert.Equal(t, p.DefaultHeaderRow, pos.HeaderRow)
	assert.Equal(t, p.DefaultAssemblyCol, pos.AssemblyCol)
	assert.Equal(t, p.DefaultQuantityCol, pos.QuantityCol)
}

func TestLocateHeaderIgnoresMarkerWithoutQuantity(t *testing.T) {
	p := ProfileFor(domain.VendorUnknown)
	// First mention of the marker word is a title; the real header with a
	// quantity column is further down.
	g := NewGrid([][]string{
		{"부재번호 관리 대장"},
		{},
		{"", "부재번호", "", "수량"},
	})

	pos := LocateHeader(g, p)
	assert.Equal(t, HeaderByMarker, pos.Method)
	assert.Equal(t, 2, pos.HeaderRow)
	assert.Equal(t, 1, pos.AssemblyCol)
	assert.Equal(t, 3, pos.QuantityCol)
}
