package memory

import (
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/domain/repositories"
)

// StockRepository provides in-memory storage of one run's stock entries
type StockRepository struct {
	entries    []entities.StockEntry
	firstIndex map[entities.ItemCode]int
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository(expectedEntries int) *StockRepository {
	return &StockRepository{
		entries:    make([]entities.StockEntry, 0, expectedEntries),
		firstIndex: make(map[entities.ItemCode]int, expectedEntries),
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadStockEntries loads stock entries into the repository, preserving order
func (r *StockRepository) LoadStockEntries(entries []entities.StockEntry) error {
	for _, entry := range entries {
		r.AddStockEntry(entry)
	}
	return nil
}

// AddStockEntry appends an entry. Later entries with an already indexed code
// are kept but never returned by FindFirst.
func (r *StockRepository) AddStockEntry(entry entities.StockEntry) {
	if _, exists := r.firstIndex[entry.Code]; !exists {
		r.firstIndex[entry.Code] = len(r.entries)
	}
	r.entries = append(r.entries, entry)
}

// FindFirst returns the first entry loaded for code
func (r *StockRepository) FindFirst(code entities.ItemCode) (*entities.StockEntry, bool) {
	index, exists := r.firstIndex[code]
	if !exists {
		return nil, false
	}
	return &r.entries[index], true
}

// Count returns the number of loaded entries
func (r *StockRepository) Count() int {
	return len(r.entries)
}
