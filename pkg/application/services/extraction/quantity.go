package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the leading decimal literal of a cell
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseQuantity reads a quantity cell. The first comma is taken as the
// decimal separator and the leading numeric part is parsed; anything
// unparseable yields zero.
func ParseQuantity(raw string) decimal.Decimal {
	text := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)

	match := numericPrefix.FindString(text)
	if match == "" {
		return decimal.Zero
	}
	match = strings.TrimSuffix(strings.TrimPrefix(match, "+"), ".")

	value, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return value
}
