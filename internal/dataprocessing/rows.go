package dataprocessing

import (
	"pcreport/pkg/contracts/domain"
)

// NormalizeRows walks every row below the header and emits one normalized
// record per accepted data row. Rejections are tallied, never fatal: a noisy
// sheet produces fewer records and higher counters, not an error.
func NormalizeRows(g Grid, pos HeaderPosition, p *VendorProfile, date string, vendor domain.Vendor) ([]domain.ProductionRecord, domain.SheetCounters) {
	var (
		records  []domain.ProductionRecord
		counters domain.SheetCounters
	)
	for row := pos.HeaderRow + 1; row < g.RowCount(); row++ {
		assemblyID, ok := g.Cell(row, pos.AssemblyCol)
		if !ok {
			// Blank id cells are layout padding, not data. Skip silently.
			continue
		}
		if p.IsExcluded(assemblyID) {
			counters.Excluded++
			continue
		}
		if !p.ValidID(assemblyID) {
			counters.Invalid++
			continue
		}
		qty, ok := rowQuantity(g, row, pos, p)
		if !ok {
			counters.Invalid++
			continue
		}
		records = append(records, domain.ProductionRecord{
			Date:          date,
			AssemblyID:    assemblyID,
			Quantity:      qty,
			SourceFactory: vendor,
		})
		counters.Processed++
	}
	return records, counters
}

// rowQuantity reads the row's quantity from the located column, with an
// optional same-row recovery scan for vendors whose daily tabs shift the
// quantity column around.
func rowQuantity(g Grid, row int, pos HeaderPosition, p *VendorProfile) (float64, bool) {
	if n, ok := g.Number(row, pos.QuantityCol); ok && n > 0 {
		return n, true
	}
	if !p.RecoverQuantity {
		return 0, false
	}
	for col := pos.AssemblyCol + 1; col < g.RowWidth(row); col++ {
		if col == pos.QuantityCol {
			continue
		}
		if n, ok := g.Number(row, col); ok && n > 0 {
			return n, true
		}
	}
	return 0, false
}
