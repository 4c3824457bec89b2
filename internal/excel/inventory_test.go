package excel_test

import (
	"bytes"
	"strings"
	"testing"

	"ledgerpro/internal/core"
	"ledgerpro/internal/excel"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return &buf
}

func TestParseInventoryRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"SKU", "Item Name", "Category", "Purchase Price", "Sale Price", "Qty", "Min Stock"},
		{"A-1", "Rice 5kg", "Grocery", "18.5", "25", "40", "5"},
		{"", "", "", "", "", "", ""},
		{"A-2", "Tea", "", "", "1,200", "3", ""},
	})

	items, err := excel.ParseInventoryRows(buf)
	if err != nil {
		t.Fatalf("ParseInventoryRows failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	rice := items[0]
	if rice.SKU != "A-1" || rice.Name != "Rice 5kg" || rice.Category != "Grocery" || rice.Quantity != 40 || rice.MinStockLevel != 5 {
		t.Errorf("unexpected first row: %+v", rice)
	}
	if !rice.PurchasePrice.Equal(decimal.RequireFromString("18.5")) {
		t.Errorf("expected purchase price 18.5, got %s", rice.PurchasePrice)
	}
	if !items[1].SalePrice.Equal(decimal.NewFromInt(1200)) || !items[1].PurchasePrice.IsZero() {
		t.Errorf("unexpected prices on second row: %+v", items[1])
	}
}

func TestParseInventoryRows_ArabicHeaders(t *testing.T) {
	buf := workbook(t, [][]any{
		{"اسم المنتج", "الكمية", "سعر البيع"},
		{"سكر", 12, 7},
	})
	items, err := excel.ParseInventoryRows(buf)
	if err != nil {
		t.Fatalf("ParseInventoryRows failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "سكر" || items[0].Quantity != 12 {
		t.Errorf("unexpected rows: %+v", items)
	}
}

func TestParseInventoryRows_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]any
		wantErr string
	}{
		{"missing quantity column", [][]any{{"Name"}, {"Tea"}}, "missing required column: quantity"},
		{"fractional quantity", [][]any{{"Name", "Qty"}, {"Tea", "1.5"}}, "row 2 invalid quantity"},
		{"negative price", [][]any{{"Name", "Qty", "Cost"}, {"Tea", "1", "-3"}}, "row 2 invalid purchase_price"},
		{"no data rows", [][]any{{"Name", "Qty"}}, "no valid data rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := excel.ParseInventoryRows(workbook(t, tt.rows))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := excel.ParseInventoryRows(strings.NewReader("not a workbook")); err == nil {
		t.Error("expected an error for a non-xlsx body")
	}
}

func TestWriteInventory_ReadsBack(t *testing.T) {
	in := []core.InventoryItem{
		{ID: "1", SKU: "B-7", Name: "Flour", Category: "Bakery", PurchasePrice: decimal.RequireFromString("3.25"),
			SalePrice: decimal.NewFromInt(5), Quantity: -2, MinStockLevel: 10},
	}
	var buf bytes.Buffer
	if err := excel.WriteInventory(&buf, in); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	out, err := excel.ParseInventoryRows(&buf)
	if err != nil {
		t.Fatalf("ParseInventoryRows failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	got := out[0]
	if got.SKU != "B-7" || got.Name != "Flour" || got.Quantity != -2 || got.MinStockLevel != 10 {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.PurchasePrice.Equal(decimal.RequireFromString("3.25")) {
		t.Errorf("expected purchase price 3.25, got %s", got.PurchasePrice)
	}
}
