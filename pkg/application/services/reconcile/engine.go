// Package reconcile joins requisition entries with stock entries and
// aggregates them into canonical records.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vsinha/reqrecon/pkg/application/dto"
	"github.com/vsinha/reqrecon/pkg/application/services/extraction"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/domain/repositories"
	"github.com/vsinha/reqrecon/pkg/infrastructure/events"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reqrecon/pkg/infrastructure/sheet"
)

// EngineConfig holds tunables of the engine
type EngineConfig struct {
	// HeaderScanRows bounds the header search on both sheets (0 = default)
	HeaderScanRows int
}

// Engine reconciles one requisition sheet against one stock sheet per call.
// It holds no per-run state, so concurrent calls are independent.
type Engine struct {
	directory repositories.ClientDirectory
	orders    *extraction.OrderExtractor
	stock     *extraction.StockExtractor
	events    events.EventStore
	logger    zerolog.Logger
}

// NewEngine creates an engine with default configuration
func NewEngine(directory repositories.ClientDirectory, eventStore events.EventStore, logger zerolog.Logger) *Engine {
	return NewEngineWithConfig(directory, eventStore, logger, EngineConfig{})
}

// NewEngineWithConfig creates an engine with custom configuration. The event
// store may be nil.
func NewEngineWithConfig(directory repositories.ClientDirectory, eventStore events.EventStore, logger zerolog.Logger, config EngineConfig) *Engine {
	return &Engine{
		directory: directory,
		orders:    extraction.NewOrderExtractor(config.HeaderScanRows),
		stock:     extraction.NewStockExtractor(config.HeaderScanRows),
		events:    eventStore,
		logger:    logger.With().Str("component", "reconcile").Logger(),
	}
}

// ProcessFiles reads both sheets from raw bytes and processes them. Content
// that cannot be parsed into rows fails with a *ProcessingError naming the side.
func (e *Engine) ProcessFiles(ctx context.Context, requisitionData []byte, requisitionName string, stockData []byte, stockName string) (*dto.ProcessResult, error) {
	requisitionRows, err := sheet.Read(requisitionData, requisitionName)
	if err != nil {
		return nil, &ProcessingError{Side: SideRequisition, Err: err}
	}
	stockRows, err := sheet.Read(stockData, stockName)
	if err != nil {
		return nil, &ProcessingError{Side: SideStock, Err: err}
	}
	return e.Process(ctx, requisitionRows, stockRows)
}

// Process extracts both sheets and aggregates requisitions per
// (code, sector, client). Unrecognized headers degrade to empty extractions;
// an empty requisition extraction yields a result without records.
func (e *Engine) Process(ctx context.Context, requisitionRows, stockRows [][]string) (*dto.ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &dto.ProcessResult{
		RunID:     uuid.NewString(),
		Records:   []entities.CanonicalRecord{},
		StartedAt: time.Now(),
	}
	log := e.logger.With().Str("run_id", result.RunID).Logger()
	log.Info().
		Int("requisition_rows", len(requisitionRows)).
		Int("stock_rows", len(stockRows)).
		Msg("processing run started")
	e.publish(events.NewRunStartedEvent(result.RunID, e.directory.Len()))

	orders, orderDiag := e.orders.Extract(requisitionRows)
	result.Requisition = orderDiag
	e.reportExtraction(log, result.RunID, events.SheetRequisition, orderDiag, len(requisitionRows))

	stockEntries, stockDiag := e.stock.Extract(stockRows)
	result.Stock = stockDiag
	e.reportExtraction(log, result.RunID, events.SheetStock, stockDiag, len(stockRows))

	if len(orders) == 0 {
		log.Warn().Msg("no requisitions extracted, nothing to reconcile")
		e.finish(log, result)
		return result, nil
	}
	stockIndex := memory.NewStockRepository(len(stockEntries))
	if err := stockIndex.LoadStockEntries(stockEntries); err != nil {
		return nil, fmt.Errorf("failed to index stock entries: %w", err)
	}
	if stockIndex.Count() == 0 {
		log.Warn().Msg("no stock entries extracted, departments and stock snapshots will be defaulted")
	}

	result.Records = e.aggregate(result.RunID, orders, stockIndex)
	e.finish(log, result)
	return result, nil
}

// aggregate folds requisition entries into one record per aggregation key,
// in order of first appearance
func (e *Engine) aggregate(runID string, orders []entities.RequisitionEntry, stockIndex repositories.StockRepository) []entities.CanonicalRecord {
	records := make([]entities.CanonicalRecord, 0, len(orders))
	positions := make(map[entities.AggregationKey]int, len(orders))

	for _, order := range orders {
		key := order.Key()
		pos, exists := positions[key]
		if !exists {
			stockItem, stockFound := stockIndex.FindFirst(order.Code)
			record := e.newRecord(order, stockItem)
			pos = len(records)
			positions[key] = pos
			records = append(records, record)
			e.publish(events.NewRecordCreatedEvent(runID, record, stockFound))
		}
		records[pos].PlannedQty = records[pos].PlannedQty.Add(order.Quantity)
	}

	return records
}

// newRecord builds a record with zero planned quantity. stockItem may be nil.
func (e *Engine) newRecord(order entities.RequisitionEntry, stockItem *entities.StockEntry) entities.CanonicalRecord {
	storageClass := entities.UnknownStorageClass
	stockPhoto := decimal.Zero
	material := order.Material
	if stockItem != nil {
		if stockItem.StorageClass != "" {
			storageClass = stockItem.StorageClass
		}
		stockPhoto = stockItem.Inventory
		if material == "" {
			material = stockItem.Description
		}
	}
	if material == "" {
		material = order.Code.String()
	}

	date, hour := SplitPlannedDateTime(order.PlannedDate)

	return entities.CanonicalRecord{
		Code:        order.Code,
		Material:    material,
		PlannedQty:  decimal.Zero,
		UOM:         order.UnitOfMeasure,
		Department:  e.directory.ResolveDepartment(storageClass),
		StockPhoto:  stockPhoto,
		Sector:      order.Sector,
		Client:      order.Client,
		ClientCode:  e.directory.AccountCodeFor(order.Client),
		ClientName:  e.directory.NameFor(order.Client),
		PlannedDate: date,
		PlannedHour: hour,
		IsNextDay:   order.IsNextDay,
	}
}

func (e *Engine) reportExtraction(log zerolog.Logger, runID, sheetName string, diag extraction.Diagnostics, rowCount int) {
	if !diag.HeaderFound {
		log.Warn().Str("sheet", sheetName).Int("rows", rowCount).Msg("header row not found, sheet yields no entries")
		e.publish(events.NewHeaderNotFoundEvent(runID, sheetName, rowCount))
		return
	}

	missing := make([]string, len(diag.MissingColumns))
	for i, f := range diag.MissingColumns {
		missing[i] = string(f)
	}
	log.Info().
		Str("sheet", sheetName).
		Int("header_row", diag.HeaderRow).
		Int("entries", diag.Entries).
		Int("dropped_rows", diag.DroppedRows).
		Strs("missing_columns", missing).
		Msg("sheet extracted")
	e.publish(events.NewSheetExtractedEvent(runID, events.SheetExtracted{
		Sheet:          sheetName,
		HeaderRow:      diag.HeaderRow,
		Entries:        diag.Entries,
		DroppedRows:    diag.DroppedRows,
		MissingColumns: missing,
	}))
}

func (e *Engine) finish(log zerolog.Logger, result *dto.ProcessResult) {
	result.Duration = time.Since(result.StartedAt)
	log.Info().
		Int("records", len(result.Records)).
		Dur("duration", result.Duration).
		Msg("processing run completed")
	e.publish(events.NewRunCompletedEvent(result.RunID, len(result.Records), result.Duration))
}

func (e *Engine) publish(event events.Event) {
	if e.events == nil {
		return
	}
	if err := e.events.AppendEvent(event.StreamID(), event); err != nil {
		e.logger.Error().Err(err).Str("event_type", event.Type()).Msg("failed to record event")
	}
}
