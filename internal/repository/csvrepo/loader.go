// Package csvrepo loads the three input tables from CSV files, the format
// the surrounding tooling exchanges snapshots in.
package csvrepo

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	ordersHeader    = []string{"date", "dish_name", "quantity_sold"}
	recipesHeader   = []string{"dish_name", "material_name", "quantity_needed"}
	inventoryHeader = []string{"material_name", "current_stock", "unit", "expiry_date", "cost_per_unit", "minimum_stock_level"}
)

// DataSource reads orders.csv, recipes.csv and inventory.csv from one
// directory. It satisfies repository.DataSource.
type DataSource struct {
	dir string
}

func NewDataSource(dir string) *DataSource {
	return &DataSource{dir: dir}
}

func (s *DataSource) ListOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	records, err := readCSV(filepath.Join(s.dir, "orders.csv"), ordersHeader)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.OrderRecord, 0, len(records))
	for i, rec := range records {
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("orders.csv row %d: invalid date %q: %w", i+2, rec[0], err)
		}
		qty, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("orders.csv row %d: invalid quantity_sold %q: %w", i+2, rec[2], err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("orders.csv row %d: quantity_sold must be non-negative, got %d", i+2, qty)
		}
		orders = append(orders, domain.OrderRecord{
			Date:         date,
			DishName:     rec[1],
			QuantitySold: qty,
		})
	}
	return orders, nil
}

func (s *DataSource) ListRecipes(ctx context.Context) ([]domain.RecipeLine, error) {
	records, err := readCSV(filepath.Join(s.dir, "recipes.csv"), recipesHeader)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.RecipeLine, 0, len(records))
	for i, rec := range records {
		qty, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("recipes.csv row %d: invalid quantity_needed %q: %w", i+2, rec[2], err)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("recipes.csv row %d: quantity_needed must be positive, got %v", i+2, qty)
		}
		recipes = append(recipes, domain.RecipeLine{
			DishName:       rec[0],
			MaterialName:   rec[1],
			QuantityNeeded: qty,
		})
	}
	return recipes, nil
}

func (s *DataSource) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	records, err := readCSV(filepath.Join(s.dir, "inventory.csv"), inventoryHeader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	inventory := make([]domain.InventoryItem, 0, len(records))
	for i, rec := range records {
		name := rec[0]
		if seen[name] {
			return nil, fmt.Errorf("inventory.csv row %d: duplicate material %q (single-lot model)", i+2, name)
		}
		seen[name] = true

		stock, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("inventory.csv row %d: invalid current_stock %q: %w", i+2, rec[1], err)
		}
		expiry, err := time.Parse(dateLayout, rec[3])
		if err != nil {
			return nil, fmt.Errorf("inventory.csv row %d: invalid expiry_date %q: %w", i+2, rec[3], err)
		}
		cost, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("inventory.csv row %d: invalid cost_per_unit %q: %w", i+2, rec[4], err)
		}
		minLevel, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("inventory.csv row %d: invalid minimum_stock_level %q: %w", i+2, rec[5], err)
		}
		if stock < 0 || cost < 0 || minLevel < 0 {
			return nil, fmt.Errorf("inventory.csv row %d: negative value for %q", i+2, name)
		}

		inventory = append(inventory, domain.InventoryItem{
			MaterialName:      name,
			CurrentStock:      stock,
			Unit:              rec[2],
			ExpiryDate:        expiry,
			CostPerUnit:       cost,
			MinimumStockLevel: minLevel,
		})
	}
	return inventory, nil
}

func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch, expected %v, got %v",
			filename, expectedHeader, records[0])
	}

	rows := records[1:]
	for i, rec := range rows {
		if len(rec) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d",
				filename, i+2, len(expectedHeader), len(rec))
		}
	}
	return rows, nil
}

func validateHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(strings.ToLower(got[i])) != want[i] {
			return false
		}
	}
	return true
}
