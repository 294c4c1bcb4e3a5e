package events

import (
	"time"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
)

const (
	RunStartedEvent     = "run.started"
	RunCompletedEvent   = "run.completed"
	SheetExtractedEvent = "sheet.extracted"
	HeaderNotFoundEvent = "sheet.header_not_found"
	RecordCreatedEvent  = "record.created"
)

// Sheet sides
const (
	SheetRequisition = "requisition"
	SheetStock       = "stock"
)

type RunStarted struct {
	RunID     string `json:"run_id"`
	Directory int    `json:"directory_clients"`
}

type SheetExtracted struct {
	Sheet          string   `json:"sheet"`
	HeaderRow      int      `json:"header_row"`
	Entries        int      `json:"entries"`
	DroppedRows    int      `json:"dropped_rows"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

type HeaderNotFound struct {
	Sheet    string `json:"sheet"`
	RowCount int    `json:"row_count"`
}

type RecordCreated struct {
	Key        entities.AggregationKey `json:"key"`
	Department string                  `json:"department"`
	StockFound bool                    `json:"stock_found"`
}

type RunCompleted struct {
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
}

func NewRunStartedEvent(runID string, directorySize int) Event {
	return NewEvent(RunStartedEvent, runID, RunStarted{RunID: runID, Directory: directorySize})
}

func NewSheetExtractedEvent(runID string, data SheetExtracted) Event {
	return NewEvent(SheetExtractedEvent, runID, data)
}

func NewHeaderNotFoundEvent(runID, sheet string, rowCount int) Event {
	return NewEvent(HeaderNotFoundEvent, runID, HeaderNotFound{Sheet: sheet, RowCount: rowCount})
}

func NewRecordCreatedEvent(runID string, record entities.CanonicalRecord, stockFound bool) Event {
	return NewEvent(RecordCreatedEvent, runID, RecordCreated{
		Key:        record.Key(),
		Department: record.Department,
		StockFound: stockFound,
	})
}

func NewRunCompletedEvent(runID string, records int, duration time.Duration) Event {
	return NewEvent(RunCompletedEvent, runID, RunCompleted{Records: records, Duration: duration})
}
