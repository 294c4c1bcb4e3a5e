package reporting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reqrecon/pkg/application/dto"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/domain/repositories"
)

// DefaultCriticalThreshold is the share of planned quantity below which a
// stock snapshot is critical
const DefaultCriticalThreshold = 0.2

// generalClientLabel names reports covering zero or several clients
const generalClientLabel = "Geral"

// Summarize counts records, distinct sectors, departments and clients, and
// records with a positive stock snapshot
func Summarize(records []entities.CanonicalRecord) dto.Summary {
	summary := dto.Summary{
		TotalItems:       len(records),
		SectorsCount:     len(GroupBySector(records)),
		DepartmentsCount: len(GroupByDepartment(records)),
		ClientsCount:     len(GroupByClient(records)),
	}
	for _, r := range records {
		if r.HasStock() {
			summary.StockItems++
		}
	}
	return summary
}

// Build assembles the full report for a record set
func Build(records []entities.CanonicalRecord, directory repositories.ClientDirectory) dto.Report {
	if records == nil {
		records = []entities.CanonicalRecord{}
	}

	bySector := GroupBySector(records)
	byDepartment := GroupByDepartment(records)

	return dto.Report{
		Records:      records,
		BySector:     bySector,
		ByDepartment: byDepartment,
		ByClient:     GroupByClient(records),
		Sectors:      keys(bySector),
		Departments:  keys(byDepartment),
		Clients:      directory.All(),
		Summary:      Summarize(records),
	}
}

// CriticalStock returns the records whose stock snapshot is below threshold
// times the planned quantity
func CriticalStock(records []entities.CanonicalRecord, threshold float64) []entities.CanonicalRecord {
	factor := decimal.NewFromFloat(threshold)

	critical := make([]entities.CanonicalRecord, 0)
	for _, r := range records {
		if r.StockPhoto.LessThan(r.PlannedQty.Mul(factor)) {
			critical = append(critical, r)
		}
	}
	return critical
}

// Title renders "<sector> <client> dd/mm/yyyy[ hour]". A single client is
// shown by full name; zero or several clients read "Geral".
func Title(sector string, clients []string, date time.Time, hour string, directory repositories.ClientDirectory) string {
	client := generalClientLabel
	if len(clients) == 1 {
		client = directory.NameFor(clients[0])
	}

	title := fmt.Sprintf("%s %s %s", sector, client, date.Format("02/01/2006"))
	if hour != "" {
		title += " " + hour
	}
	return title
}

// AvailableDepartments lists the departments offered as filter choices
func AvailableDepartments() []string {
	return entities.Departments()
}
