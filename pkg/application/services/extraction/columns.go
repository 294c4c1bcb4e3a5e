package extraction

import "strings"

// Field names a semantic column of a sheet
type Field string

// Requisition fields
const (
	FieldMaterial     Field = "material"
	FieldQuantity     Field = "quantity"
	FieldUOM          Field = "uom"
	FieldSector       Field = "sector"
	FieldClient       Field = "client"
	FieldPlannedDate  Field = "plannedDate"
	FieldObservations Field = "observations"
)

// Stock fields
const (
	FieldCode         Field = "code"
	FieldDescription  Field = "description"
	FieldInventory    Field = "inventory"
	FieldStorageClass Field = "storageClass"
)

// FieldRule pairs a field with the header keywords that identify its column
type FieldRule struct {
	Field    Field
	Keywords []string
}

// RequisitionFields is the column table of the requisition sheet
var RequisitionFields = []FieldRule{
	{FieldMaterial, []string{"material"}},
	{FieldQuantity, []string{"qtd plan"}},
	{FieldUOM, []string{"uom"}},
	{FieldSector, []string{"unidade"}},
	{FieldClient, []string{"cliente"}},
	{FieldPlannedDate, []string{"planeada"}},
	{FieldObservations, []string{"observ"}},
}

// StockFields is the column table of the inventory sheet
var StockFields = []FieldRule{
	{FieldCode, []string{"nº", "código"}},
	{FieldDescription, []string{"descrição"}},
	{FieldInventory, []string{"inventário"}},
	{FieldStorageClass, []string{"classe"}},
}

// ColumnMap maps each field to its column index, -1 when the column is absent
type ColumnMap map[Field]int

// ResolveColumns finds, for every rule, the first header cell containing one
// of its keywords (case-insensitive)
func ResolveColumns(header []string, rules []FieldRule) ColumnMap {
	lowered := make([]string, len(header))
	for i, cell := range header {
		lowered[i] = strings.ToLower(cell)
	}

	columns := make(ColumnMap, len(rules))
	for _, rule := range rules {
		columns[rule.Field] = -1
		keywords := lowerAll(rule.Keywords)
		for i, cell := range lowered {
			if containsAny(cell, keywords) {
				columns[rule.Field] = i
				break
			}
		}
	}
	return columns
}

// Missing lists the fields of rules without a resolved column, in table order
func (m ColumnMap) Missing(rules []FieldRule) []Field {
	var missing []Field
	for _, rule := range rules {
		if idx, ok := m[rule.Field]; !ok || idx < 0 {
			missing = append(missing, rule.Field)
		}
	}
	return missing
}

// Cell returns the text of field in row as read, or "" when the column is
// absent or the row is too short. Only item codes are trimmed, by the entry
// constructors; other fields keep their surrounding whitespace.
func (m ColumnMap) Cell(row []string, field Field) string {
	idx, ok := m[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
