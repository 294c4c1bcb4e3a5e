package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/vsinha/reqrecon/pkg/application/services/filter"
	"github.com/vsinha/reqrecon/pkg/config"
	"github.com/vsinha/reqrecon/pkg/infrastructure/logging"
	"github.com/vsinha/reqrecon/pkg/interfaces/cli/commands"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to YAML configuration file (optional)",
			Value:   "reqrecon.yaml",
			EnvVars: []string{"REQRECON_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Override log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Override log format: json, console",
		},
	}
}

func processFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "orders",
			Usage:    "Path to the requisition sheet (xlsx, xls or delimited text)",
			Required: true,
			EnvVars:  []string{"REQRECON_ORDERS"},
		},
		&cli.StringFlag{
			Name:     "stock",
			Usage:    "Path to the stock sheet (xlsx, xls or delimited text)",
			Required: true,
			EnvVars:  []string{"REQRECON_STOCK"},
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text, json, csv (default from config)",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Write the report to this file instead of stdout",
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "Keep records planned on this date (yyyy-mm-dd)",
		},
		&cli.StringFlag{
			Name:  "hour",
			Usage: "Keep records whose planned hour contains this text",
		},
		&cli.StringSliceFlag{
			Name:  "client",
			Usage: "Keep only these client short-codes (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-client",
			Usage: "Drop these client short-codes (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "department",
			Usage: "Keep only these departments (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "sector",
			Usage: "Keep only these sectors (repeatable)",
		},
		&cli.StringFlag{
			Name:  "next-day",
			Usage: "Keep only next-day (true) or same-day (false) records",
		},
		&cli.StringFlag{
			Name:  "title-sector",
			Usage: "Print a report title for this sector",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Include extraction diagnostics and the run event stream in the report",
		},
	}
}

func clientsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "find",
			Usage: "Short-code, account code or part of a client name",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text, json",
			Value: "text",
		},
	}
}

// setup loads configuration and builds the logger shared by every command
func setup(c *cli.Context) (config.Config, zerolog.Logger, error) {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if v := c.String("log-level"); v != "" {
		settings.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		settings.Log.Format = v
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return settings, logger, nil
}

func runProcess(c *cli.Context) error {
	settings, logger, err := setup(c)
	if err != nil {
		return err
	}

	opts, err := filterOptions(c)
	if err != nil {
		return err
	}

	cmd := commands.NewProcessCommand(commands.ProcessConfig{
		OrdersFile:  c.String("orders"),
		StockFile:   c.String("stock"),
		Settings:    settings,
		Format:      c.String("format"),
		OutputFile:  c.String("out"),
		Filter:      opts,
		TitleSector: c.String("title-sector"),
		Verbose:     c.Bool("verbose"),
		Stdout:      c.App.Writer,
		Logger:      logger,
	})
	return cmd.Execute(commandContext(c))
}

func runClients(c *cli.Context) error {
	settings, logger, err := setup(c)
	if err != nil {
		return err
	}

	cmd := commands.NewClientsCommand(commands.ClientsConfig{
		Settings: settings,
		Find:     c.String("find"),
		Format:   c.String("format"),
		Stdout:   c.App.Writer,
		Logger:   logger,
	})
	return cmd.Execute(commandContext(c))
}

func filterOptions(c *cli.Context) (filter.Options, error) {
	opts := filter.Options{
		Hour:            c.String("hour"),
		Clients:         c.StringSlice("client"),
		ExcludedClients: c.StringSlice("exclude-client"),
		Departments:     c.StringSlice("department"),
		Sectors:         c.StringSlice("sector"),
	}

	if v := c.String("date"); v != "" {
		date, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return filter.Options{}, fmt.Errorf("invalid --date %q: %w", v, err)
		}
		opts.Date = &date
	}
	if v := c.String("next-day"); v != "" {
		nextDay, err := strconv.ParseBool(v)
		if err != nil {
			return filter.Options{}, fmt.Errorf("invalid --next-day %q: %w", v, err)
		}
		opts.IsNextDay = &nextDay
	}

	return opts, nil
}

func commandContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
