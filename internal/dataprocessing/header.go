package dataprocessing

import "strings"

// HeaderMethod records which strategy located the header. Carried into logs
// so noisy files can be traced back to the fallback that handled them.
type HeaderMethod string

const (
	HeaderByMarker  HeaderMethod = "marker"
	HeaderByPattern HeaderMethod = "pattern"
	HeaderByDefault HeaderMethod = "default"
)

// HeaderPosition is the located layout of one sheet: the header row and the
// two data columns everything downstream reads. All indices are 0-based.
type HeaderPosition struct {
	HeaderRow   int
	AssemblyCol int
	QuantityCol int
	Method      HeaderMethod
}

// headerScanRows bounds the marker search. Every known vendor layout puts
// the header in the top of the sheet; scanning further only finds false
// positives in data regions.
const headerScanRows = 20

// LocateHeader finds the header row and data columns of a sheet using three
// strategies in order: marker tokens, assembly-id pattern fallback, and the
// profile's hard defaults. It always returns a usable position; a wrong
// guess surfaces later as invalid-row counts, not as a failure here.
func LocateHeader(g Grid, p *VendorProfile) HeaderPosition {
	if pos, ok := locateByMarkers(g, p); ok {
		return pos
	}
	if pos, ok := locateByPattern(g, p); ok {
		return pos
	}
	return HeaderPosition{
		HeaderRow:   p.DefaultHeaderRow,
		AssemblyCol: p.DefaultAssemblyCol,
		QuantityCol: p.DefaultQuantityCol,
		Method:      HeaderByDefault,
	}
}

// locateByMarkers scans the top rows for a cell containing an assembly
// marker, then resolves the quantity column from the same row.
func locateByMarkers(g Grid, p *VendorProfile) (HeaderPosition, bool) {
	limit := g.RowCount()
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for row := 0; row < limit; row++ {
		assemblyCol := findMarker(g, row, p.AssemblyMarkers)
		if assemblyCol < 0 {
			continue
		}
		quantityCol, ok := resolveQuantityCol(g, row, assemblyCol, p)
		if !ok {
			// Header row without a usable quantity column is likely a
			// stray title mentioning the marker word. Keep scanning.
			continue
		}
		return HeaderPosition{
			HeaderRow:   row,
			AssemblyCol: assemblyCol,
			QuantityCol: quantityCol,
			Method:      HeaderByMarker,
		}, true
	}
	return HeaderPosition{}, false
}

// findMarker returns the column of the first cell in the row containing any
// of the markers, or -1.
func findMarker(g Grid, row int, markers []string) int {
	cells := g.Row(row)
	for col := range cells {
		v, ok := g.Cell(row, col)
		if !ok {
			continue
		}
		lower := strings.ToLower(v)
		for _, m := range markers {
			if strings.Contains(lower, strings.ToLower(m)) {
				return col
			}
		}
	}
	return -1
}

// resolveQuantityCol finds the quantity column for a header found at
// (row, assemblyCol). For combined two-row headers the marker cell is only a
// category label; the real column is the one carrying the sub-label in the
// row below, searched rightward from the category cell.
func resolveQuantityCol(g Grid, row, assemblyCol int, p *VendorProfile) (int, bool) {
	markerCol := findMarker(g, row, p.QuantityMarkers)
	if markerCol < 0 || markerCol == assemblyCol {
		return 0, false
	}
	if p.QuantitySubLabel == "" {
		return markerCol, true
	}

	sub := strings.ToLower(p.QuantitySubLabel)
	width := g.RowWidth(row + 1)
	for col := markerCol; col < width; col++ {
		v, ok := g.Cell(row+1, col)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), sub) {
			return col, true
		}
	}
	// Sub-label row missing; the category column itself is the best guess.
	return markerCol, true
}

// locateByPattern handles sheets with no header text at all: the first cell
// matching the vendor's assembly-id shape marks the id column, the row above
// it is treated as the header, and the quantity column is probed within the
// profile's offset window.
func locateByPattern(g Grid, p *VendorProfile) (HeaderPosition, bool) {
	if p.FallbackIDPattern == nil {
		return HeaderPosition{}, false
	}
	for row := 0; row < g.RowCount(); row++ {
		cells := g.Row(row)
		for col := range cells {
			v, ok := g.Cell(row, col)
			if !ok || !p.FallbackIDPattern.MatchString(v) {
				continue
			}
			headerRow := row - 1
			if headerRow < 0 {
				headerRow = 0
			}
			return HeaderPosition{
				HeaderRow:   headerRow,
				AssemblyCol: col,
				QuantityCol: probeQuantityCol(g, row, col, p),
				Method:      HeaderByPattern,
			}, true
		}
	}
	return HeaderPosition{}, false
}

// probeQuantityCol guesses the quantity column relative to the id column by
// trying each offset in the profile's window and picking the first that
// holds a positive number in the candidate data row. Falls back to the
// window's minimum offset when nothing matches.
func probeQuantityCol(g Grid, dataRow, assemblyCol int, p *VendorProfile) int {
	for off := p.QuantityOffsetMin; off <= p.QuantityOffsetMax; off++ {
		if n, ok := g.Number(dataRow, assemblyCol+off); ok && n > 0 {
			return assemblyCol + off
		}
	}
	return assemblyCol + p.QuantityOffsetMin
}
