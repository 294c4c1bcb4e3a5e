// Package sheet turns raw workbook bytes into rectangular rows of cell text.
// It applies no interpretation: header detection and typing happen downstream.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format identifies the container a sheet was read from
type Format string

const (
	FormatXLSX      Format = "xlsx"
	FormatXLS       Format = "xls"
	FormatDelimited Format = "delimited"
)

var (
	// ErrUnreadable is returned when the content cannot be parsed into rows at all
	ErrUnreadable = errors.New("content is not a readable sheet")
	// ErrEmptyWorkbook is returned for a workbook without any worksheet
	ErrEmptyWorkbook = errors.New("workbook has no worksheets")
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// xlsCharset is the code page assumed for legacy workbooks without a
// declared encoding
const xlsCharset = "windows-1252"

// Detect sniffs the container format from magic bytes. Anything that is
// neither a zip nor an OLE compound document is treated as delimited text.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}
	return FormatDelimited
}

// Read parses the first worksheet of data into rows of formatted cell text.
// Every row is padded with empty cells to the width of the widest row. name
// only labels errors.
func Read(data []byte, name string) ([][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnreadable, name)
	}

	var (
		rows [][]string
		err  error
	)
	switch Detect(data) {
	case FormatXLSX:
		rows, err = readXLSX(data)
	case FormatXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readDelimited(data)
	}
	if err != nil {
		if errors.Is(err, ErrUnreadable) || errors.Is(err, ErrEmptyWorkbook) {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}

	return rectangular(rows), nil
}

// ReadFile reads and parses a sheet from disk
func ReadFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet %s: %w", path, err)
	}
	return Read(data, filepath.Base(path))
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return f.GetRows(sheets[0])
}

func readXLS(data []byte) (rows [][]string, err error) {
	// extrame/xls panics on some malformed compound documents
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: malformed xls: %v", ErrUnreadable, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, err
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrEmptyWorkbook
	}

	rows = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		cols := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cols[j] = row.Col(j)
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func readDelimited(data []byte) ([][]string, error) {
	if !strings.HasPrefix(http.DetectContentType(data), "text/") {
		return nil, fmt.Errorf("%w: binary content", ErrUnreadable)
	}

	decoded := DecodeText(data)
	reader := csv.NewReader(decoded)
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// sniffDelimiter picks the most frequent of ';', tab and ',' on the first line
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, candidate := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func rectangular(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}
