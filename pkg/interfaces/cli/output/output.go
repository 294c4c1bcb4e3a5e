package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/reqrecon/pkg/application/dto"
	"github.com/vsinha/reqrecon/pkg/application/services/extraction"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/infrastructure/events"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputFile string
	Verbose    bool
}

// View is everything rendered for one processing run
type View struct {
	Result   *dto.ProcessResult
	Report   dto.Report
	Critical []entities.CanonicalRecord
	Title    string
	// Events is the run's event stream, rendered when set
	Events []events.Event
}

// Generate renders view in the configured format, to OutputFile when set and
// to w otherwise
func Generate(w io.Writer, view View, config Config) error {
	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(config.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch config.Format {
	case "text", "":
		return generateTextOutput(w, view, config)
	case "json":
		return generateJSONOutput(w, view)
	case "csv":
		return generateCSVOutput(w, view)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, view View, config Config) error {
	result := view.Result

	if view.Title != "" {
		fmt.Fprintf(w, "%s\n\n", view.Title)
	}

	if !result.HasRequisitions() {
		fmt.Fprintf(w, "No requisitions found: the requisition sheet produced no entries.\n")
		if !result.Requisition.HeaderFound {
			fmt.Fprintf(w, "The header row was not recognized within the scanned rows.\n")
		}
		return nil
	}

	summary := view.Report.Summary
	fmt.Fprintf(w, "📊 Requisition Report\n")
	fmt.Fprintf(w, "=====================\n\n")
	fmt.Fprintf(w, "Items: %d\n", summary.TotalItems)
	fmt.Fprintf(w, "Sectors: %d\n", summary.SectorsCount)
	fmt.Fprintf(w, "Departments: %d\n", summary.DepartmentsCount)
	fmt.Fprintf(w, "Clients: %d\n", summary.ClientsCount)
	fmt.Fprintf(w, "Items In Stock: %d\n\n", summary.StockItems)

	if config.Verbose {
		writeDiagnostics(w, "Requisition sheet", result.Requisition)
		writeDiagnostics(w, "Stock sheet", result.Stock)
		fmt.Fprintf(w, "Run: %s (%v)\n\n", result.RunID, result.Duration)
		writeEvents(w, view.Events)
	}

	for _, group := range view.Report.ByDepartment {
		fmt.Fprintf(w, "📦 %s\n", group.Key)
		writeRecordTable(w, group.Records)
		fmt.Fprintln(w)
	}

	if len(view.Critical) > 0 {
		fmt.Fprintf(w, "⚠️  Critical Stock:\n")
		writeRecordTable(w, view.Critical)
		fmt.Fprintln(w)
	}

	return nil
}

func writeDiagnostics(w io.Writer, label string, diag extraction.Diagnostics) {
	if !diag.HeaderFound {
		fmt.Fprintf(w, "%s: header not found\n", label)
		return
	}
	fmt.Fprintf(w, "%s: header at row %d, %d entries, %d dropped rows", label, diag.HeaderRow+1, diag.Entries, diag.DroppedRows)
	if len(diag.MissingColumns) > 0 {
		fmt.Fprintf(w, ", missing columns %v", diag.MissingColumns)
	}
	fmt.Fprintln(w)
}

func writeEvents(w io.Writer, stream []events.Event) {
	if len(stream) == 0 {
		return
	}
	fmt.Fprintf(w, "Run events:\n")
	for _, e := range stream {
		fmt.Fprintf(w, "  %3d %-24s %s\n", e.Version(), e.Type(), e.Timestamp().Format("15:04:05.000"))
	}
	fmt.Fprintln(w)
}

func writeRecordTable(w io.Writer, records []entities.CanonicalRecord) {
	fmt.Fprintf(w, "%-10s %-30s %-10s %-6s %-10s %-8s %-20s %-11s %-6s %-4s\n",
		"Code", "Material", "Planned", "UOM", "Stock", "Sector", "Client", "Date", "Hour", "D+1")
	fmt.Fprintf(w, "%-10s %-30s %-10s %-6s %-10s %-8s %-20s %-11s %-6s %-4s\n",
		"----------", "------------------------------", "----------", "------", "----------",
		"--------", "--------------------", "-----------", "------", "----")

	for _, r := range records {
		nextDay := ""
		if r.IsNextDay {
			nextDay = "yes"
		}
		fmt.Fprintf(w, "%-10s %-30s %-10s %-6s %-10s %-8s %-20s %-11s %-6s %-4s\n",
			r.Code,
			truncate(r.Material, 30),
			r.PlannedQty.String(),
			r.UOM,
			r.StockPhoto.String(),
			r.Sector,
			truncate(r.ClientName, 20),
			r.PlannedDate,
			r.PlannedHour,
			nextDay)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// jsonRecord renders a record with its quantities as JSON numbers
type jsonRecord struct {
	entities.CanonicalRecord
	PlannedQty json.Number `json:"plannedQty"`
	StockPhoto json.Number `json:"stockPhoto"`
}

type jsonGroup struct {
	Key     string       `json:"key"`
	Records []jsonRecord `json:"records"`
}

type jsonReport struct {
	Records      []jsonRecord             `json:"data"`
	BySector     []jsonGroup              `json:"groupedBySector"`
	ByDepartment []jsonGroup              `json:"groupedByDepartment"`
	ByClient     []jsonGroup              `json:"groupedByClient"`
	Sectors      []string                 `json:"sectors"`
	Departments  []string                 `json:"departments"`
	Clients      []entities.ClientMapping `json:"clients"`
	Summary      dto.Summary              `json:"summary"`
}

type jsonDocument struct {
	Success     bool                   `json:"success"`
	RunID       string                 `json:"runId"`
	Title       string                 `json:"title,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Report      jsonReport             `json:"report"`
	StockAlerts []jsonRecord           `json:"stockAlerts"`
	Requisition extraction.Diagnostics `json:"requisitionSheet"`
	Stock       extraction.Diagnostics `json:"stockSheet"`
	Events      []events.Event         `json:"events,omitempty"`
}

func toJSONRecords(records []entities.CanonicalRecord) []jsonRecord {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			CanonicalRecord: r,
			PlannedQty:      json.Number(r.PlannedQty.String()),
			StockPhoto:      json.Number(r.StockPhoto.String()),
		})
	}
	return out
}

func toJSONGroups(groups []dto.Group) []jsonGroup {
	out := make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, jsonGroup{Key: g.Key, Records: toJSONRecords(g.Records)})
	}
	return out
}

func toJSONReport(report dto.Report) jsonReport {
	return jsonReport{
		Records:      toJSONRecords(report.Records),
		BySector:     toJSONGroups(report.BySector),
		ByDepartment: toJSONGroups(report.ByDepartment),
		ByClient:     toJSONGroups(report.ByClient),
		Sectors:      report.Sectors,
		Departments:  report.Departments,
		Clients:      report.Clients,
		Summary:      report.Summary,
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(w io.Writer, view View) error {
	doc := jsonDocument{
		Success:     true,
		RunID:       view.Result.RunID,
		Title:       view.Title,
		Report:      toJSONReport(view.Report),
		StockAlerts: toJSONRecords(view.Critical),
		Requisition: view.Result.Requisition,
		Stock:       view.Result.Stock,
		Events:      view.Events,
	}
	if !view.Result.HasRequisitions() {
		doc.Message = "no requisitions found"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// generateCSVOutput writes one line per record
func generateCSVOutput(w io.Writer, view View) error {
	writer := csv.NewWriter(w)

	header := []string{
		"code", "material", "plannedQty", "executedQty", "uom", "department", "stockPhoto",
		"sector", "client", "clientCode", "clientName", "plannedDate", "plannedHour", "isNextDay",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range view.Report.Records {
		row := []string{
			r.Code.String(),
			r.Material,
			r.PlannedQty.String(),
			r.ExecutedQty,
			r.UOM,
			r.Department,
			r.StockPhoto.String(),
			r.Sector,
			r.Client,
			r.ClientCode,
			r.ClientName,
			r.PlannedDate,
			r.PlannedHour,
			strconv.FormatBool(r.IsNextDay),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Clients renders the client directory entries as text or JSON
func Clients(w io.Writer, clients []entities.ClientMapping, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(clients); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	case "text", "":
		fmt.Fprintf(w, "%-8s %-30s %-12s\n", "Code", "Name", "Account")
		fmt.Fprintf(w, "%-8s %-30s %-12s\n", "--------", "------------------------------", "------------")
		for _, c := range clients {
			fmt.Fprintf(w, "%-8s %-30s %-12s\n", c.ShortCode, truncate(c.Name, 30), c.AccountCode)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
