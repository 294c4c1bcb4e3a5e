package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StockEntry is one typed row of the inventory sheet
type StockEntry struct {
	Code         ItemCode
	Description  string
	Inventory    decimal.Decimal
	StorageClass string
}

// NewStockEntry builds a stock entry, normalizing the raw storage class through
// the alias table. ok is false when the code is blank.
func NewStockEntry(code, description string, inventory decimal.Decimal, rawClass string) (StockEntry, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return StockEntry{}, false
	}

	return StockEntry{
		Code:         ItemCode(code),
		Description:  description,
		Inventory:    inventory,
		StorageClass: NormalizeStorageClass(rawClass),
	}, true
}
