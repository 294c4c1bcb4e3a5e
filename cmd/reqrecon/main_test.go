package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"reqrecon", "--log-level", "error"}, args...))
	return buf.String(), err
}

func TestApp_Clients(t *testing.T) {
	t.Setenv("REQRECON_SHORTCODE_TABLE", filepath.Join(t.TempDir(), "absent.csv"))

	out, err := runApp(t, "clients", "--find", "korean")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "KE") || !strings.Contains(out, "C000021") {
		t.Errorf("Expected Korean Air from built-in clients, got %s", out)
	}
}

func TestApp_Process(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REQRECON_SHORTCODE_TABLE", filepath.Join(dir, "absent.csv"))

	orders := filepath.Join(dir, "orders.csv")
	stock := filepath.Join(dir, "stock.csv")
	os.WriteFile(orders, []byte("Material,Qtd Plan,Unidade,Cliente,Data Planeada,Observações\n00000001 - Widget,\"2,5\",S1,EK,2025-06-01 08:00,D+1\n"), 0o644)
	os.WriteFile(stock, []byte("Código,Descrição,Inventário,Classe\n00000001,Widget,0,RF\n"), 0o644)

	out, err := runApp(t, "process", "--orders", orders, "--stock", stock,
		"--format", "json", "--date", "2025-06-01", "--next-day", "true", "--client", "EK")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, `"clientName": "Emirates Airlines"`) || !strings.Contains(out, `"department": "Refrigerados"`) {
		t.Errorf("Unexpected output %s", out)
	}
	if !strings.Contains(out, `"plannedQty": 2.5`) {
		t.Errorf("Expected plannedQty rendered as a JSON number, got %s", out)
	}
}

func TestApp_SliceFlagKeepsCommas(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REQRECON_SHORTCODE_TABLE", filepath.Join(dir, "absent.csv"))

	orders := filepath.Join(dir, "orders.csv")
	stock := filepath.Join(dir, "stock.csv")
	os.WriteFile(orders, []byte("Material,Qtd Plan,Unidade,Cliente\n00000001 - Widget,1,\"Bar, Lounge\",EK\n00000001 - Widget,1,S1,EK\n"), 0o644)
	os.WriteFile(stock, []byte("Código,Descrição,Inventário,Classe\n00000001,Widget,0,RF\n"), 0o644)

	out, err := runApp(t, "process", "--orders", orders, "--stock", stock,
		"--format", "json", "--sector", "Bar, Lounge")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, `"sector": "Bar, Lounge"`) {
		t.Errorf("Expected the comma-bearing sector to be selected, got %s", out)
	}
	if strings.Contains(out, `"sector": "S1"`) {
		t.Errorf("Expected S1 to be filtered out, got %s", out)
	}
}

func TestApp_InvalidFilterFlags(t *testing.T) {
	tests := [][]string{
		{"--date", "01/06/2025"},
		{"--next-day", "maybe"},
	}

	for _, extra := range tests {
		args := append([]string{"process", "--orders", "a.csv", "--stock", "b.csv"}, extra...)
		if _, err := runApp(t, args...); err == nil {
			t.Errorf("Expected error for %v", extra)
		}
	}
}
