package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "reqrecon",
		Usage: "Reconcile requisition sheets against stock sheets",
		Flags: globalFlags(),
		// repeat a slice flag to pass several values; commas stay in the value
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "Reconcile a requisition sheet with a stock sheet and print the report",
				Flags:  processFlags(),
				Action: runProcess,
			},
			{
				Name:   "clients",
				Usage:  "List the client directory or look a client up",
				Flags:  clientsFlags(),
				Action: runClients,
			},
		},
	}
}
