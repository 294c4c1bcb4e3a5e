package entities

import "github.com/shopspring/decimal"

// DefaultPlannedHour is used when the planned date carries no time part
const DefaultPlannedHour = "00:00"

// AggregationKey identifies one canonical record within a processing run
type AggregationKey struct {
	Code   ItemCode
	Sector string
	Client string
}

// CanonicalRecord is the reconciled, client-enriched, quantity-aggregated unit
// of report output
type CanonicalRecord struct {
	Code        ItemCode        `json:"code"`
	Material    string          `json:"material"`
	PlannedQty  decimal.Decimal `json:"plannedQty"`
	ExecutedQty string          `json:"executedQty"`
	UOM         string          `json:"uom"`
	Department  string          `json:"department"`
	StockPhoto  decimal.Decimal `json:"stockPhoto"`
	Sector      string          `json:"sector"`
	Client      string          `json:"client"`
	ClientCode  string          `json:"clientCode"`
	ClientName  string          `json:"clientName"`
	PlannedDate string          `json:"plannedDate"`
	PlannedHour string          `json:"plannedHour"`
	IsNextDay   bool            `json:"isNextDay"`
}

// Key returns the aggregation key of the record
func (r CanonicalRecord) Key() AggregationKey {
	return AggregationKey{Code: r.Code, Sector: r.Sector, Client: r.Client}
}

// HasStock reports whether the stock snapshot is positive
func (r CanonicalRecord) HasStock() bool {
	return r.StockPhoto.IsPositive()
}
