package reporting

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/memory"
)

func rec(code, sector, dept, client string, planned, stock int64) entities.CanonicalRecord {
	return entities.CanonicalRecord{
		Code:       entities.ItemCode(code),
		Sector:     sector,
		Department: dept,
		Client:     client,
		PlannedQty: decimal.NewFromInt(planned),
		StockPhoto: decimal.NewFromInt(stock),
	}
}

func sample() []entities.CanonicalRecord {
	return []entities.CanonicalRecord{
		rec("1", "S2", "Secos", "EK", 10, 1),
		rec("2", "S1", "Congelados", "EK", 10, 2),
		rec("3", "S2", "Congelados", "TP", 10, 0),
		rec("4", "S1", "N/A", "DL", 5, 50),
	}
}

func TestGroupBy(t *testing.T) {
	bySector := GroupBySector(sample())
	if got := keys(bySector); !reflect.DeepEqual(got, []string{"S2", "S1"}) {
		t.Errorf("Expected sectors in first-appearance order [S2 S1], got %v", got)
	}
	if len(bySector[0].Records) != 2 || bySector[0].Records[1].Code != "3" {
		t.Errorf("Expected S2 group to hold records 1 and 3, got %+v", bySector[0].Records)
	}

	if got := keys(GroupByDepartment(sample())); !reflect.DeepEqual(got, []string{"Secos", "Congelados", "N/A"}) {
		t.Errorf("Unexpected department groups %v", got)
	}
	if got := keys(GroupByClient(sample())); !reflect.DeepEqual(got, []string{"EK", "TP", "DL"}) {
		t.Errorf("Unexpected client groups %v", got)
	}
	if groups := GroupBySector(nil); groups == nil || len(groups) != 0 {
		t.Errorf("Expected empty non-nil groups, got %v", groups)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sample())

	if summary.TotalItems != 4 || summary.SectorsCount != 2 || summary.DepartmentsCount != 3 ||
		summary.ClientsCount != 3 || summary.StockItems != 3 {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestBuild(t *testing.T) {
	directory := memory.NewClientDirectory(nil, entities.DefaultClients())

	report := Build(sample(), directory)
	if len(report.Records) != 4 || len(report.ByClient) != 3 {
		t.Errorf("Unexpected report shape: %d records, %d client groups", len(report.Records), len(report.ByClient))
	}
	if !reflect.DeepEqual(report.Sectors, []string{"S2", "S1"}) {
		t.Errorf("Unexpected sectors %v", report.Sectors)
	}
	if len(report.Clients) != len(entities.DefaultClients()) {
		t.Errorf("Expected directory clients in report, got %d", len(report.Clients))
	}

	empty := Build(nil, directory)
	if empty.Records == nil || empty.Summary.TotalItems != 0 {
		t.Errorf("Expected empty report with non-nil records, got %+v", empty)
	}
}

func TestCriticalStock(t *testing.T) {
	critical := CriticalStock(sample(), DefaultCriticalThreshold)

	var got []string
	for _, r := range critical {
		got = append(got, r.Code.String())
	}
	// 10*0.2 = 2: stock 1 and 0 are critical, stock 2 is not
	if !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("Expected critical records [1 3], got %v", got)
	}
}

func TestTitle(t *testing.T) {
	directory := memory.NewClientDirectory(nil, entities.DefaultClients())
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		clients  []string
		hour     string
		expected string
	}{
		{"single known client", []string{"EK"}, "", "S1 Emirates Airlines 01/06/2025"},
		{"single unknown client", []string{"ZZ"}, "08:00", "S1 ZZ 01/06/2025 08:00"},
		{"no clients", nil, "", "S1 Geral 01/06/2025"},
		{"several clients", []string{"EK", "TP"}, "13", "S1 Geral 01/06/2025 13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title("S1", tt.clients, date, tt.hour, directory); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAvailableDepartments(t *testing.T) {
	expected := []string{"PRAÇA", "Congelados", "Refrigerados", "Secos", "Consumíveis", "Cozinha Quente"}
	if got := AvailableDepartments(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
