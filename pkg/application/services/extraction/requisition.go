package extraction

import "github.com/vsinha/reqrecon/pkg/domain/entities"

// OrderExtractor turns raw requisition sheet rows into requisition entries
type OrderExtractor struct {
	scanRows int
}

// NewOrderExtractor creates an extractor that searches the first scanRows
// rows for the header
func NewOrderExtractor(scanRows int) *OrderExtractor {
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}
	return &OrderExtractor{scanRows: scanRows}
}

// Extract locates the header and maps every row below it. A missing header
// yields no entries and is reported through the diagnostics only.
func (e *OrderExtractor) Extract(rows [][]string) ([]entities.RequisitionEntry, Diagnostics) {
	headerIdx, err := LocateHeader(rows, RequisitionHeaderKeywords, e.scanRows)
	if err != nil {
		return nil, headerNotFound()
	}
	return ExtractRequisitions(rows, headerIdx)
}

// ExtractRequisitions maps the rows following headerIdx to requisition
// entries, preserving row order. Rows without an item code are dropped.
func ExtractRequisitions(rows [][]string, headerIdx int) ([]entities.RequisitionEntry, Diagnostics) {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil, headerNotFound()
	}

	columns := ResolveColumns(rows[headerIdx], RequisitionFields)
	diag := Diagnostics{
		HeaderFound:    true,
		HeaderRow:      headerIdx,
		MissingColumns: columns.Missing(RequisitionFields),
	}

	entries := make([]entities.RequisitionEntry, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if row == nil {
			diag.DroppedRows++
			continue
		}

		entry, ok := entities.NewRequisitionEntry(
			columns.Cell(row, FieldMaterial),
			ParseQuantity(columns.Cell(row, FieldQuantity)),
			columns.Cell(row, FieldUOM),
			columns.Cell(row, FieldSector),
			columns.Cell(row, FieldClient),
			columns.Cell(row, FieldPlannedDate),
			columns.Cell(row, FieldObservations),
		)
		if !ok {
			diag.DroppedRows++
			continue
		}
		entries = append(entries, entry)
	}

	diag.Entries = len(entries)
	return entries, diag
}
