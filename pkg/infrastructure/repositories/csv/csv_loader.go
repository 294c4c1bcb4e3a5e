package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reqrecon/pkg/infrastructure/sheet"
)

// ErrTableNotFound is returned when a reference table exists under neither
// its configured path nor the fallback directory
var ErrTableNotFound = errors.New("reference table not found")

// ClientTables locates the two client reference tables
type ClientTables struct {
	// ShortCodeTable holds "code,name" rows
	ShortCodeTable string
	// AccountCodeTable holds "accountCode,name" rows; extra fields are ignored
	AccountCodeTable string
	// FallbackDir is searched for a table's base name when its path is missing
	FallbackDir string
}

// Loader handles loading client reference data from delimited files
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a new reference-table loader
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "client_tables").Logger()}
}

// LoadClientDirectory builds the client directory from the reference tables.
// It never fails: any load error, or an empty result, yields a directory
// built from defaults.
func (l *Loader) LoadClientDirectory(tables ClientTables, defaults []entities.ClientMapping) *memory.ClientDirectory {
	clients, err := l.LoadClients(tables)
	if err != nil {
		l.logger.Warn().Err(err).Int("defaults", len(defaults)).Msg("client tables unavailable, using built-in clients")
		return memory.NewClientDirectory(nil, defaults)
	}
	if len(clients) == 0 {
		l.logger.Warn().Int("defaults", len(defaults)).Msg("client tables are empty, using built-in clients")
		return memory.NewClientDirectory(nil, defaults)
	}

	l.logger.Info().Int("clients", len(clients)).Msg("loaded client mappings")
	return memory.NewClientDirectory(clients, defaults)
}

// LoadClients reads both reference tables and joins them by client name.
// A missing account table is tolerated: every client then gets a synthetic
// account code.
func (l *Loader) LoadClients(tables ClientTables) ([]entities.ClientMapping, error) {
	shortPath, err := resolveTablePath(tables.ShortCodeTable, tables.FallbackDir)
	if err != nil {
		return nil, fmt.Errorf("short-code table: %w", err)
	}
	shortRows, err := readTable(shortPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read short-code table %s: %w", shortPath, err)
	}

	accountByName := make(map[string]string)
	accountPath, err := resolveTablePath(tables.AccountCodeTable, tables.FallbackDir)
	switch {
	case errors.Is(err, ErrTableNotFound):
		l.logger.Warn().Str("path", tables.AccountCodeTable).Msg("account-code table not found, deriving synthetic codes")
	case err != nil:
		return nil, fmt.Errorf("account-code table: %w", err)
	default:
		accountRows, err := readTable(accountPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read account-code table %s: %w", accountPath, err)
		}
		for _, row := range accountRows {
			code, name := cleanField(row[0]), cleanField(row[1])
			if code != "" && name != "" {
				accountByName[name] = code
			}
		}
	}

	var clients []entities.ClientMapping
	position := make(map[string]int)
	for _, row := range shortRows {
		shortCode, name := cleanField(row[0]), cleanField(row[1])
		if shortCode == "" || name == "" {
			continue
		}
		if idx, seen := position[shortCode]; seen {
			clients[idx].Name = name
			continue
		}
		position[shortCode] = len(clients)
		clients = append(clients, entities.ClientMapping{ShortCode: shortCode, Name: name})
	}

	for i := range clients {
		if code, ok := accountByName[clients[i].Name]; ok {
			clients[i].AccountCode = code
		} else {
			clients[i].AccountCode = entities.SyntheticAccountCode(clients[i].ShortCode)
		}
	}

	return clients, nil
}

func resolveTablePath(path, fallbackDir string) (string, error) {
	candidates := []string{path}
	if fallbackDir != "" && path != "" {
		candidates = append(candidates, filepath.Join(fallbackDir, filepath.Base(path)))
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", candidate)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %s", ErrTableNotFound, path)
}

// readTable returns the data rows of a reference table (header skipped),
// each with at least two fields
func readTable(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(sheet.DecodeText(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(record) < 2 {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}
