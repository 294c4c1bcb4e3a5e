package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NextDayMarker flags a requisition for delivery on the following day
const NextDayMarker = "D+1"

// RequisitionEntry is one typed row of the requisition sheet
type RequisitionEntry struct {
	Code          ItemCode
	Material      string
	Quantity      decimal.Decimal
	UnitOfMeasure string
	Sector        string
	Client        string
	PlannedDate   string
	Observations  string
	IsNextDay     bool
}

// NewRequisitionEntry builds an entry from a combined material cell and the
// remaining raw fields. ok is false when the derived item code is blank.
func NewRequisitionEntry(material string, quantity decimal.Decimal, uom, sector, client, plannedDate, observations string) (RequisitionEntry, bool) {
	if strings.TrimSpace(material) == "" {
		return RequisitionEntry{}, false
	}

	code, description := SplitMaterial(material)
	if code.IsBlank() {
		return RequisitionEntry{}, false
	}

	return RequisitionEntry{
		Code:          code,
		Material:      description,
		Quantity:      quantity,
		UnitOfMeasure: uom,
		Sector:        sector,
		Client:        client,
		PlannedDate:   plannedDate,
		Observations:  observations,
		IsNextDay:     strings.Contains(observations, NextDayMarker),
	}, true
}

// Key returns the aggregation key of the entry
func (r RequisitionEntry) Key() AggregationKey {
	return AggregationKey{Code: r.Code, Sector: r.Sector, Client: r.Client}
}
