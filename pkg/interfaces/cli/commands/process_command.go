package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/vsinha/reqrecon/pkg/application/services/filter"
	"github.com/vsinha/reqrecon/pkg/application/services/reconcile"
	"github.com/vsinha/reqrecon/pkg/application/services/reporting"
	"github.com/vsinha/reqrecon/pkg/config"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/infrastructure/events"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reqrecon/pkg/interfaces/cli/output"
)

// ProcessConfig holds configuration for the process command
type ProcessConfig struct {
	OrdersFile  string
	StockFile   string
	Settings    config.Config
	Format      string
	OutputFile  string
	Filter      filter.Options
	TitleSector string
	Verbose     bool
	Stdout      io.Writer
	Logger      zerolog.Logger
}

// ProcessCommand reconciles a requisition sheet against a stock sheet and
// renders the resulting report
type ProcessCommand struct {
	config ProcessConfig
}

// NewProcessCommand creates a new process command with the given configuration
func NewProcessCommand(config ProcessConfig) *ProcessCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Format == "" {
		config.Format = config.Settings.Report.Format
	}
	return &ProcessCommand{
		config: config,
	}
}

// Execute runs the process command
func (c *ProcessCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	orders, err := os.ReadFile(c.config.OrdersFile)
	if err != nil {
		return fmt.Errorf("error reading requisition sheet: %w", err)
	}
	stock, err := os.ReadFile(c.config.StockFile)
	if err != nil {
		return fmt.Errorf("error reading stock sheet: %w", err)
	}

	directory := loadDirectory(c.config.Settings, c.config.Logger)
	store := events.NewInMemoryEventStore(c.config.Logger)
	sub, err := store.Subscribe(nil, events.HandlerFunc(func(e events.Event) error {
		c.config.Logger.Debug().
			Str("run_id", e.StreamID()).
			Str("event_type", e.Type()).
			Int("version", e.Version()).
			Msg("event recorded")
		return nil
	}))
	if err != nil {
		return fmt.Errorf("failed to subscribe to run events: %w", err)
	}
	defer store.Unsubscribe(sub)
	engine := reconcile.NewEngineWithConfig(directory, store, c.config.Logger, reconcile.EngineConfig{
		HeaderScanRows: c.config.Settings.Extraction.HeaderScanRows,
	})

	result, err := engine.ProcessFiles(ctx, orders, c.config.OrdersFile, stock, c.config.StockFile)
	if err != nil {
		var procErr *reconcile.ProcessingError
		if errors.As(err, &procErr) {
			return fmt.Errorf("unreadable %s input: %w", procErr.Side, err)
		}
		return fmt.Errorf("processing failed: %w", err)
	}

	records := filter.Apply(result.Records, c.config.Filter)
	if c.config.Verbose && !c.config.Filter.IsEmpty() {
		c.config.Logger.Info().
			Int("before", len(result.Records)).
			Int("after", len(records)).
			Msg("filters applied")
	}

	view := output.View{
		Result:   result,
		Report:   reporting.Build(records, directory),
		Critical: reporting.CriticalStock(records, c.config.Settings.Report.CriticalThreshold),
	}
	if c.config.Verbose {
		runEvents, err := store.ReadEvents(result.RunID, 1)
		if err != nil {
			return fmt.Errorf("failed to read run events: %w", err)
		}
		view.Events = runEvents
	}
	if c.config.TitleSector != "" {
		view.Title = reporting.Title(c.config.TitleSector, c.config.Filter.Clients, c.titleDate(), c.config.Filter.Hour, directory)
	}

	return output.Generate(c.config.Stdout, view, output.Config{
		Format:     c.config.Format,
		OutputFile: c.config.OutputFile,
		Verbose:    c.config.Verbose,
	})
}

// validateInputs checks that both sheets were given
func (c *ProcessCommand) validateInputs() error {
	if c.config.OrdersFile == "" {
		return fmt.Errorf("requisition sheet is required")
	}
	if c.config.StockFile == "" {
		return fmt.Errorf("stock sheet is required")
	}
	return nil
}

func (c *ProcessCommand) titleDate() time.Time {
	if c.config.Filter.Date != nil {
		return *c.config.Filter.Date
	}
	return time.Now()
}

// loadDirectory builds the client directory from the configured reference
// tables, falling back to the built-in clients
func loadDirectory(settings config.Config, logger zerolog.Logger) *memory.ClientDirectory {
	loader := csv.NewLoader(logger)
	return loader.LoadClientDirectory(csv.ClientTables{
		ShortCodeTable:   settings.Clients.ShortCodeTable,
		AccountCodeTable: settings.Clients.AccountTable,
		FallbackDir:      settings.Clients.FallbackDir,
	}, entities.DefaultClients())
}
