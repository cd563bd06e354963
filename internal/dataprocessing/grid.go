package dataprocessing

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a read-only view over one worksheet's raw cell values, row-major
// as returned by excelize GetRows. Rows are ragged: trailing blank cells are
// absent rather than empty.
type Grid struct {
	rows [][]string
}

// NewGrid wraps raw worksheet rows.
func NewGrid(rows [][]string) Grid {
	return Grid{rows: rows}
}

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int {
	return len(g.rows)
}

// Row returns the raw cells of a row, or nil when out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	return g.rows[row]
}

// RowWidth returns the number of cells present in a row.
func (g Grid) RowWidth(row int) int {
	return len(g.Row(row))
}

// Cell returns the trimmed string value at (row, col), both 0-based.
// The second return is false when the cell is out of range or blank.
func (g Grid) Cell(row, col int) (string, bool) {
	r := g.Row(row)
	if col < 0 || col >= len(r) {
		return "", false
	}
	v := strings.TrimSpace(r[col])
	if v == "" {
		return "", false
	}
	return v, true
}

// CellByLetter reads a cell addressed by a spreadsheet column letter
// ("A", "B", ... "AA"). Vendor layouts documented in column-letter terms
// go through here.
func (g Grid) CellByLetter(row int, col string) (string, bool) {
	idx, err := ColumnIndex(col)
	if err != nil {
		return "", false
	}
	return g.Cell(row, idx)
}

// Number reads the cell at (row, col) as a number, stripping thousands
// separators first. Returns false for absent, blank or non-numeric cells.
func (g Grid) Number(row, col int) (float64, bool) {
	v, ok := g.Cell(row, col)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ColumnIndex converts a spreadsheet column letter to a 0-based index.
func ColumnIndex(letter string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ColumnLetter converts a 0-based column index to its spreadsheet letter.
func ColumnLetter(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}
