package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/vsinha/reqrecon/pkg/config"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/interfaces/cli/output"
)

// ClientsConfig holds configuration for the clients command
type ClientsConfig struct {
	Settings config.Config
	Find     string
	Format   string
	Stdout   io.Writer
	Logger   zerolog.Logger
}

// ClientsCommand lists the client directory or looks a client up
type ClientsCommand struct {
	config ClientsConfig
}

// NewClientsCommand creates a new clients command with the given configuration
func NewClientsCommand(config ClientsConfig) *ClientsCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &ClientsCommand{config: config}
}

// Execute runs the clients command. Find is tried as a short-code, then as
// an account code, then as part of a name.
func (c *ClientsCommand) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	directory := loadDirectory(c.config.Settings, c.config.Logger)

	clients := directory.All()
	if c.config.Find != "" {
		client, ok := directory.LookupByShortCode(c.config.Find)
		if !ok {
			client, ok = directory.LookupByAccountCode(c.config.Find)
		}
		if !ok {
			client, ok = directory.LookupByNamePart(c.config.Find)
		}
		if !ok {
			return fmt.Errorf("no client matches %q", c.config.Find)
		}
		clients = []entities.ClientMapping{*client}
	}

	return output.Clients(c.config.Stdout, clients, c.config.Format)
}
