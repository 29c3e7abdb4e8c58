package sample

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

const dateLayout = "2006-01-02"

// WriteCSV dumps the three tables into dir using the loader's file names and
// headers.
func WriteCSV(dir string, orders []domain.OrderRecord, recipes []domain.RecipeLine, inventory []domain.InventoryItem) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed creating %s: %w", dir, err)
	}

	orderRows := [][]string{{"date", "dish_name", "quantity_sold"}}
	for _, o := range orders {
		orderRows = append(orderRows, []string{
			o.Date.Format(dateLayout),
			o.DishName,
			strconv.Itoa(o.QuantitySold),
		})
	}
	if err := writeCSVFile(filepath.Join(dir, "orders.csv"), orderRows); err != nil {
		return err
	}

	recipeRows := [][]string{{"dish_name", "material_name", "quantity_needed"}}
	for _, r := range recipes {
		recipeRows = append(recipeRows, []string{
			r.DishName,
			r.MaterialName,
			strconv.FormatFloat(r.QuantityNeeded, 'f', -1, 64),
		})
	}
	if err := writeCSVFile(filepath.Join(dir, "recipes.csv"), recipeRows); err != nil {
		return err
	}

	inventoryRows := [][]string{{"material_name", "current_stock", "unit", "expiry_date", "cost_per_unit", "minimum_stock_level"}}
	for _, item := range inventory {
		inventoryRows = append(inventoryRows, []string{
			item.MaterialName,
			strconv.FormatFloat(item.CurrentStock, 'f', -1, 64),
			item.Unit,
			item.ExpiryDate.Format(dateLayout),
			strconv.FormatFloat(item.CostPerUnit, 'f', -1, 64),
			strconv.FormatFloat(item.MinimumStockLevel, 'f', -1, 64),
		})
	}
	return writeCSVFile(filepath.Join(dir, "inventory.csv"), inventoryRows)
}

func writeCSVFile(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed creating %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed writing %s: %w", filename, err)
	}
	return nil
}
