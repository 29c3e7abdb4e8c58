package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/minhle/fnb-optimizer/internal/sample"
)

const schema = `
CREATE TABLE IF NOT EXISTS order_history (
	id            BIGSERIAL PRIMARY KEY,
	order_date    DATE NOT NULL,
	dish_name     TEXT NOT NULL,
	quantity_sold INTEGER NOT NULL CHECK (quantity_sold >= 0)
);

CREATE TABLE IF NOT EXISTS recipe_lines (
	id              BIGSERIAL PRIMARY KEY,
	dish_name       TEXT NOT NULL,
	material_name   TEXT NOT NULL,
	quantity_needed DOUBLE PRECISION NOT NULL CHECK (quantity_needed > 0),
	UNIQUE (dish_name, material_name)
);

CREATE TABLE IF NOT EXISTS inventory_items (
	material_name       TEXT PRIMARY KEY,
	current_stock       DOUBLE PRECISION NOT NULL CHECK (current_stock >= 0),
	unit                TEXT NOT NULL,
	expiry_date         DATE NOT NULL,
	cost_per_unit       DOUBLE PRECISION NOT NULL CHECK (cost_per_unit >= 0),
	minimum_stock_level DOUBLE PRECISION NOT NULL CHECK (minimum_stock_level >= 0)
);
`

func runSeed(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(c.Context, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	gen := sample.NewGenerator(c.Int64("seed"))
	now := time.Now()

	orders := gen.GenerateOrders(now, c.Int("history-days"))
	recipes := gen.GenerateRecipes()
	inventory := gen.GenerateInventory(now)

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"order_history", "recipe_lines", "inventory_items"} {
		if _, err := tx.ExecContext(c.Context, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, o := range orders {
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO order_history (order_date, dish_name, quantity_sold) VALUES ($1, $2, $3)`,
			o.Date, o.DishName, o.QuantitySold); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
	}

	for _, r := range recipes {
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO recipe_lines (dish_name, material_name, quantity_needed) VALUES ($1, $2, $3)`,
			r.DishName, r.MaterialName, r.QuantityNeeded); err != nil {
			return fmt.Errorf("failed to insert recipe line: %w", err)
		}
	}

	for _, item := range inventory {
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO inventory_items (material_name, current_stock, unit, expiry_date, cost_per_unit, minimum_stock_level)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.MaterialName, item.CurrentStock, item.Unit, item.ExpiryDate, item.CostPerUnit, item.MinimumStockLevel); err != nil {
			return fmt.Errorf("failed to insert inventory item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Printf("seeded %d orders, %d recipe lines and %d inventory items",
		len(orders), len(recipes), len(inventory))
	return nil
}
