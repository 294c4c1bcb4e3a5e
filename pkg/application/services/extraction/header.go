// Package extraction locates header rows in loosely structured sheets and
// maps the rows below them to typed requisition and stock entries.
package extraction

import (
	"errors"
	"strings"
)

// DefaultScanRows is how many leading rows are searched for a header
const DefaultScanRows = 10

// ErrHeaderNotFound is returned when no row within the scan window carries a
// header keyword
var ErrHeaderNotFound = errors.New("header row not found")

// Header keywords identifying each sheet kind
var (
	RequisitionHeaderKeywords = []string{"material"}
	StockHeaderKeywords       = []string{"nº", "código", "inventário"}
)

// LocateHeader returns the index of the first row, among the first window
// rows, where any cell contains any keyword (case-insensitive)
func LocateHeader(rows [][]string, keywords []string, window int) (int, error) {
	if window <= 0 {
		window = DefaultScanRows
	}
	if window > len(rows) {
		window = len(rows)
	}

	lowered := lowerAll(keywords)
	for i := 0; i < window; i++ {
		for _, cell := range rows[i] {
			if containsAny(strings.ToLower(cell), lowered) {
				return i, nil
			}
		}
	}
	return -1, ErrHeaderNotFound
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
