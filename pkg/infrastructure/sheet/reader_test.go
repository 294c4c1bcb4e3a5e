package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	testinghelpers "github.com/vsinha/reqrecon/pkg/infrastructure/testing"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	data, err := testinghelpers.BuildXLSX(rows)
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}
	return data
}

func TestRead_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Relatório de requisições"},
		{"Material", "Qtd Plan", "UOM"},
		{"12345678 - Gelo", "5", "KG"},
	})

	rows, err := Read(data, "orders.xlsx")
	if err != nil {
		t.Fatalf("Failed to read workbook: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Errorf("Expected row %d to be padded to 3 cells, got %d", i, len(row))
		}
	}
	if rows[1][1] != "Qtd Plan" {
		t.Errorf("Expected header cell 'Qtd Plan', got %q", rows[1][1])
	}
	if rows[2][0] != "12345678 - Gelo" {
		t.Errorf("Expected material cell, got %q", rows[2][0])
	}
}

func TestRead_XLSXDetectedByContent(t *testing.T) {
	data := buildWorkbook(t, [][]string{{"Nº", "Descrição"}})

	if got := Detect(data); got != FormatXLSX {
		t.Errorf("Expected xlsx detection from magic bytes, got %s", got)
	}
	if _, err := Read(data, "upload.bin"); err != nil {
		t.Errorf("Expected workbook to be read regardless of name, got %v", err)
	}
}

func TestRead_Delimited(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected [][]string
	}{
		{
			name:     "semicolon",
			data:     []byte("Nº;Descrição;Inventário\n12345678;Gelo;10\n"),
			expected: [][]string{{"Nº", "Descrição", "Inventário"}, {"12345678", "Gelo", "10"}},
		},
		{
			name:     "comma with ragged rows",
			data:     []byte("a,b,c\nx\n"),
			expected: [][]string{{"a", "b", "c"}, {"x", "", ""}},
		},
		{
			name:     "utf-8 bom",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, []byte("Material,UOM\n")...),
			expected: [][]string{{"Material", "UOM"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Read(tt.data, "sheet.csv")
			if err != nil {
				t.Fatalf("Failed to read delimited text: %v", err)
			}
			if len(rows) != len(tt.expected) {
				t.Fatalf("Expected %d rows, got %d", len(tt.expected), len(rows))
			}
			for i := range tt.expected {
				for j := range tt.expected[i] {
					if rows[i][j] != tt.expected[i][j] {
						t.Errorf("Expected cell [%d][%d] %q, got %q", i, j, tt.expected[i][j], rows[i][j])
					}
				}
			}
		})
	}
}

func TestRead_DelimitedWindows1252(t *testing.T) {
	data, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Código;Classe\nA1;Congelação\n"))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	rows, err := Read(data, "stock.csv")
	if err != nil {
		t.Fatalf("Failed to read delimited text: %v", err)
	}
	if rows[0][0] != "Código" {
		t.Errorf("Expected decoded header 'Código', got %q", rows[0][0])
	}
	if rows[1][1] != "Congelação" {
		t.Errorf("Expected decoded cell 'Congelação', got %q", rows[1][1])
	}
}

func TestRead_Unreadable(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		file string
	}{
		{name: "empty", data: nil, file: "orders.xlsx"},
		{name: "whitespace only", data: []byte("  \n\t"), file: "orders.csv"},
		{name: "corrupt zip", data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x01, 0x02}, file: "orders.xlsx"},
		{name: "binary garbage", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE}, file: "orders.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.data, tt.file)
			if !errors.Is(err, ErrUnreadable) {
				t.Errorf("Expected ErrUnreadable, got %v", err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.csv")
	if err := os.WriteFile(path, []byte("Nº;Inventário\n1;2\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(rows))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		line     string
		expected rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"single", ','},
		{"a;b,c;d\nx,y,z,w,v", ';'},
	}

	for _, tt := range tests {
		if got := sniffDelimiter([]byte(tt.line)); got != tt.expected {
			t.Errorf("Expected delimiter %q for %q, got %q", tt.expected, tt.line, got)
		}
	}
}
