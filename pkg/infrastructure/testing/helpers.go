package testing

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
	"github.com/vsinha/reqrecon/pkg/infrastructure/repositories/memory"
)

// RequisitionHeader is a complete requisition header row
var RequisitionHeader = []string{"Material", "Qtd Plan", "UOM", "Unidade", "Cliente", "Data Planeada", "Observações"}

// StockHeader is a complete inventory header row
var StockHeader = []string{"Nº", "Descrição", "Inventário", "Classe"}

// Scenario is a pair of raw sheets together with the directory they are
// reconciled against
type Scenario struct {
	RequisitionRows [][]string
	StockRows       [][]string
	Directory       *memory.ClientDirectory
}

// BuildCateringScenario builds a two-sector, three-client scenario. It
// reconciles to five records:
//
//	00000001 S1 EK  5    Congelados   stock 10
//	00000002 S1 EK  12   Secos        stock 1, critical
//	00000001 S2 TP  1.5  Congelados   stock 10
//	00000003 S2 DL  4    PRAÇA        stock 0, critical, D+1
//	00000004 S1 ZZ  2    N/A          no stock row, critical
func BuildCateringScenario() Scenario {
	requisitions := [][]string{
		{"Plano de produção", "", "", "", "", "", ""},
		RequisitionHeader,
		{"00000001 - Frango congelado", "2,0", "KG", "S1", "EK", "2025-06-01 08:00", ""},
		{"00000002 - Arroz", "12", "KG", "S1", "EK", "2025-06-01 08:00", ""},
		{"00000001 - Frango congelado", "3,0", "KG", "S1", "EK", "2025-06-01 09:00", ""},
		{"00000001 - Frango congelado", "1,5", "KG", "S2", "TP", "2025-06-01 13:30", ""},
		{"00000003 - Fruta", "4", "UN", "S2", "DL", "2025-06-02", "entrega D+1"},
		{"", "7", "UN", "S2", "DL", "2025-06-02", ""},
		{"00000004", "2", "UN", "S1", "ZZ", "2025-06-01 08:00", ""},
	}
	stock := [][]string{
		StockHeader,
		{"00000001", "Frango", "10", "CF"},
		{"00000002", "Arroz agulha", "1", "S"},
		{"00000003", "Fruta da época", "0", "P"},
		{"00000001", "Frango duplicado", "99", "RF"},
	}

	return Scenario{
		RequisitionRows: requisitions,
		StockRows:       stock,
		Directory:       memory.NewClientDirectory(nil, entities.DefaultClients()),
	}
}

// BuildXLSX writes rows to the first sheet of a new workbook
func BuildXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
