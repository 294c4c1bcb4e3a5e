package repositories

import "github.com/vsinha/reqrecon/pkg/domain/entities"

// StockRepository provides access to the stock entries of one processing run
type StockRepository interface {
	LoadStockEntries(entries []entities.StockEntry) error
	// FindFirst returns the first loaded entry with the given code, in load order
	FindFirst(code entities.ItemCode) (*entities.StockEntry, bool)
	Count() int
}
