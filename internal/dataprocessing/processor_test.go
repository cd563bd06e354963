package dataprocessing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pcreport/pkg/contracts/domain"
)

// sheetData maps a cell address ("B3") to its value.
type sheetData map[string]interface{}

func writeWorkbook(t *testing.T, path string, sheets map[string]sheetData) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, cells := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for addr, v := range cells {
			require.NoError(t, f.SetCellValue(name, addr, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func jinsungSheet() sheetData {
	return sheetData{
		"A1": "진성피씨 생산일보 2025년 3월 12일",
		"B2": "부재번호", "F2": "생산수량",
		"B3": "15-101-1001", "F3": 12,
		"B4": "15-101-1002", "F4": 8,
		"B5": "소계", "F5": 20,
	}
}

func TestProcessFileSingleSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "진성 생산일보.xlsx")
	writeWorkbook(t, path, map[string]sheetData{"일보": jinsungSheet()})

	p := NewProcessor(nil).WithDateResolver(NewDateResolverAt(testNow))
	res := p.ProcessFile(context.Background(), MetadataForPath(path), "")

	require.NoError(t, res.Err)
	assert.Equal(t, domain.VendorJinsungPC, res.Vendor)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "20250312", res.Records[0].Date)
	assert.Equal(t, "15-101-1001", res.Records[0].AssemblyID)
	assert.Equal(t, 12.0, res.Records[0].Quantity)
	assert.Equal(t, domain.VendorJinsungPC, res.Records[0].SourceFactory)
	assert.Equal(t, 2, res.Counters.Processed)
	assert.Equal(t, 1, res.Counters.Excluded)
	assert.False(t, res.DateFellBack)
}

func TestProcessFileMultiSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "나라피씨 생산일보.xlsx")
	writeWorkbook(t, path, map[string]sheetData{
		"0312": {
			"A1": "2025년 3월 12일",
			"B2": "부재번호", "D2": "생산량",
			"B3": "15-101-1001", "D3": 4,
		},
		"0313": {
			"A1": "2025년 3월 13일",
			"B2": "부재번호", "D2": "생산량",
			"B3": "15-101-1002", "D3": 6,
		},
		"사용금지": {
			"B2": "부재번호", "D2": "생산량",
			"B3": "15-999-9999", "D3": 99,
		},
	})

	p := NewProcessor(nil).WithDateResolver(NewDateResolverAt(testNow))
	res := p.ProcessFile(context.Background(), MetadataForPath(path), "")

	require.NoError(t, res.Err)
	assert.Equal(t, domain.VendorNaraPC, res.Vendor)
	require.Len(t, res.Records, 2)

	byID := make(map[string]domain.ProductionRecord)
	for _, r := range res.Records {
		byID[r.AssemblyID] = r
	}
	assert.Equal(t, "20250312", byID["15-101-1001"].Date)
	assert.Equal(t, "20250313", byID["15-101-1002"].Date)
	assert.NotContains(t, byID, "15-999-9999")
}

func TestProcessFileExplicitVendorOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	writeWorkbook(t, path, map[string]sheetData{"일보": jinsungSheet()})

	p := NewProcessor(nil).WithDateResolver(NewDateResolverAt(testNow))
	res := p.ProcessFile(context.Background(), MetadataForPath(path), domain.VendorJinsungPC)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.VendorJinsungPC, res.Vendor)
	assert.Len(t, res.Records, 2)
}

func TestProcessFileOpenFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	p := NewProcessor(nil)
	res := p.ProcessFile(context.Background(), MetadataForPath(path), "")

	require.Error(t, res.Err)
	assert.NotEmpty(t, res.ErrMessage)
	assert.Empty(t, res.Records)
}

func TestProcessReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "진성 일보.xlsx")
	writeWorkbook(t, path, map[string]sheetData{"일보": jinsungSheet()})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	p := NewProcessor(nil).WithDateResolver(NewDateResolverAt(testNow))
	res := p.ProcessReader(context.Background(), bytes.NewReader(data), domain.FileMetadata{
		Name: "진성 일보.xlsx",
	}, "")

	require.NoError(t, res.Err)
	assert.Equal(t, domain.VendorJinsungPC, res.Vendor)
	assert.Len(t, res.Records, 2)
}

func TestProcessFileCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "진성 일보.xlsx")
	writeWorkbook(t, path, map[string]sheetData{"일보": jinsungSheet()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(nil)
	res := p.ProcessFile(ctx, MetadataForPath(path), "")
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestProcessFileDateFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "진성일보.xlsx")
	writeWorkbook(t, path, map[string]sheetData{
		"일보": {
			"B2": "부재번호", "F2": "생산수량",
			"B3": "15-101-1001", "F3": 12,
		},
	})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// No date anywhere: document, sheet name, filename and metadata are
	// all silent, so only the today fallback remains.
	p := NewProcessor(nil).WithDateResolver(NewDateResolverAt(testNow))
	res := p.ProcessReader(context.Background(), bytes.NewReader(data),
		domain.FileMetadata{Name: "진성일보.xlsx"}, "")

	require.NoError(t, res.Err)
	assert.True(t, res.DateFellBack)
	require.Len(t, res.Records, 1)
	assert.Equal(t, testNow.Format("20060102"), res.Records[0].Date)
}
