package postgres

import (
	"context"
	"fmt"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

// DataSource reads the three input tables from Postgres. Writes happen
// elsewhere (ingestion jobs, seeders); this core only reads snapshots.
type DataSource struct {
	db *DB
}

func NewDataSource(db *DB) *DataSource {
	return &DataSource{db: db}
}

func (s *DataSource) ListOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	const query = `
		SELECT order_date, dish_name, quantity_sold
		FROM order_history
		ORDER BY order_date, dish_name`

	orders := []domain.OrderRecord{}
	if err := s.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list order history: %w", err)
	}
	return orders, nil
}

func (s *DataSource) ListRecipes(ctx context.Context) ([]domain.RecipeLine, error) {
	const query = `
		SELECT dish_name, material_name, quantity_needed
		FROM recipe_lines
		ORDER BY dish_name, material_name`

	recipes := []domain.RecipeLine{}
	if err := s.db.SelectContext(ctx, &recipes, query); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *DataSource) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	const query = `
		SELECT material_name, current_stock, unit, expiry_date, cost_per_unit, minimum_stock_level
		FROM inventory_items
		ORDER BY material_name`

	inventory := []domain.InventoryItem{}
	if err := s.db.SelectContext(ctx, &inventory, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return inventory, nil
}
