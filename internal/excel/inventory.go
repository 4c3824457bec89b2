package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ledgerpro/internal/core"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Inventory"

// columns is the export order; headers are the canonical names below.
var columns = []string{"sku", "name", "category", "purchase_price", "sale_price", "quantity", "min_stock_level"}

var headerAliases = map[string]string{
	"sku":             "sku",
	"code":            "sku",
	"item code":       "sku",
	"رمز المنتج":      "sku",
	"الرمز":           "sku",
	"name":            "name",
	"item name":       "name",
	"product name":    "name",
	"product":         "name",
	"اسم المنتج":      "name",
	"الاسم":           "name",
	"category":        "category",
	"التصنيف":         "category",
	"الفئة":           "category",
	"purchase price":  "purchase_price",
	"cost":            "purchase_price",
	"buy price":       "purchase_price",
	"سعر الشراء":      "purchase_price",
	"sale price":      "sale_price",
	"sell price":      "sale_price",
	"price":           "sale_price",
	"سعر البيع":       "sale_price",
	"quantity":        "quantity",
	"qty":             "quantity",
	"stock":           "quantity",
	"الكمية":          "quantity",
	"min stock level": "min_stock_level",
	"min stock":       "min_stock_level",
	"reorder level":   "min_stock_level",
	"الحد الأدنى":     "min_stock_level",
}

// ParseInventoryRows reads the first sheet of an xlsx workbook. The header row
// may use English or Arabic names; name and quantity are required. Rows
// without a name are skipped.
func ParseInventoryRows(reader io.Reader) ([]core.InventoryItem, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	colMap := mapColumns(rows[0])
	for _, required := range []string{"name", "quantity"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	result := make([]core.InventoryItem, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		name := strings.TrimSpace(readCell(cells, colMap, "name"))
		if name == "" {
			continue
		}

		qty, err := parseInt(readCell(cells, colMap, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid quantity: %w", index+1, err)
		}
		item := core.InventoryItem{
			SKU:      strings.TrimSpace(readCell(cells, colMap, "sku")),
			Name:     name,
			Category: strings.TrimSpace(readCell(cells, colMap, "category")),
			Quantity: qty,
		}

		if item.PurchasePrice, err = parseOptionalDecimal(readCell(cells, colMap, "purchase_price")); err != nil {
			return nil, fmt.Errorf("row %d invalid purchase_price: %w", index+1, err)
		}
		if item.SalePrice, err = parseOptionalDecimal(readCell(cells, colMap, "sale_price")); err != nil {
			return nil, fmt.Errorf("row %d invalid sale_price: %w", index+1, err)
		}
		if raw := strings.TrimSpace(readCell(cells, colMap, "min_stock_level")); raw != "" {
			if item.MinStockLevel, err = parseInt(raw); err != nil {
				return nil, fmt.Errorf("row %d invalid min_stock_level: %w", index+1, err)
			}
		}

		result = append(result, item)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("excel file has no valid data rows")
	}
	return result, nil
}

// WriteInventory writes items as a single-sheet workbook with the columns
// ParseInventoryRows reads back.
func WriteInventory(w io.Writer, items []core.InventoryItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, col := range columns {
		if err := setCell(f, i+1, 1, col); err != nil {
			return err
		}
	}
	for r, item := range items {
		row := r + 2
		values := []any{
			item.SKU,
			item.Name,
			item.Category,
			item.PurchasePrice.InexactFloat64(),
			item.SalePrice.InexactFloat64(),
			item.Quantity,
			item.MinStockLevel,
		}
		for c, v := range values {
			if err := setCell(f, c+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		canonical, ok := headerAliases[normalizeHeader(col)]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	return strings.Join(strings.Fields(value), " ")
}

func readCell(row []string, colMap map[string]int, column string) string {
	idx, ok := colMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseInt(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("must be an integer")
	}
	return int(asFloat), nil
}

func parseOptionalDecimal(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number")
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}
