package extraction

import "github.com/vsinha/reqrecon/pkg/domain/entities"

// StockExtractor turns raw inventory sheet rows into stock entries
type StockExtractor struct {
	scanRows int
}

// NewStockExtractor creates an extractor that searches the first scanRows
// rows for the header
func NewStockExtractor(scanRows int) *StockExtractor {
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}
	return &StockExtractor{scanRows: scanRows}
}

// Extract locates the header and maps every row below it
func (e *StockExtractor) Extract(rows [][]string) ([]entities.StockEntry, Diagnostics) {
	headerIdx, err := LocateHeader(rows, StockHeaderKeywords, e.scanRows)
	if err != nil {
		return nil, headerNotFound()
	}
	return ExtractStock(rows, headerIdx)
}

// ExtractStock maps the rows following headerIdx to stock entries with a
// normalized storage class. Rows with a blank code are dropped.
func ExtractStock(rows [][]string, headerIdx int) ([]entities.StockEntry, Diagnostics) {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil, headerNotFound()
	}

	columns := ResolveColumns(rows[headerIdx], StockFields)
	diag := Diagnostics{
		HeaderFound:    true,
		HeaderRow:      headerIdx,
		MissingColumns: columns.Missing(StockFields),
	}

	entries := make([]entities.StockEntry, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		entry, ok := entities.NewStockEntry(
			columns.Cell(row, FieldCode),
			columns.Cell(row, FieldDescription),
			ParseQuantity(columns.Cell(row, FieldInventory)),
			columns.Cell(row, FieldStorageClass),
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
