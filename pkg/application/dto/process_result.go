package dto

import (
	"time"

	"github.com/vsinha/reqrecon/pkg/application/services/extraction"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
)

// ProcessResult contains the complete output of one processing run
type ProcessResult struct {
	RunID       string                     `json:"runId"`
	Records     []entities.CanonicalRecord `json:"records"`
	Requisition extraction.Diagnostics     `json:"requisitionSheet"`
	Stock       extraction.Diagnostics     `json:"stockSheet"`
	StartedAt   time.Time                  `json:"startedAt"`
	Duration    time.Duration              `json:"duration"`
}

// HasRequisitions reports whether the requisition sheet yielded any entry.
// A run without requisitions is a valid outcome with no records.
func (r *ProcessResult) HasRequisitions() bool {
	return r.Requisition.Entries > 0
}

// Group is an ordered bucket of records sharing a key
type Group struct {
	Key     string                     `json:"key"`
	Records []entities.CanonicalRecord `json:"records"`
}

// Summary holds the headline counts of a record set
type Summary struct {
	TotalItems       int `json:"totalItems"`
	SectorsCount     int `json:"sectorsCount"`
	DepartmentsCount int `json:"departmentsCount"`
	ClientsCount     int `json:"clientsCount"`
	StockItems       int `json:"stockItems"`
}

// Report is the record set together with its groupings, as handed to
// presentation consumers
type Report struct {
	Records      []entities.CanonicalRecord `json:"data"`
	BySector     []Group                    `json:"groupedBySector"`
	ByDepartment []Group                    `json:"groupedByDepartment"`
	ByClient     []Group                    `json:"groupedByClient"`
	Sectors      []string                   `json:"sectors"`
	Departments  []string                   `json:"departments"`
	Clients      []entities.ClientMapping   `json:"clients"`
	Summary      Summary                    `json:"summary"`
}
