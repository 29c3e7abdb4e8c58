// Package repository defines the ingestion boundary: the optimizer core
// consumes in-memory snapshots of the three input tables, and implementations
// of these interfaces produce them.
package repository

import (
	"context"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.OrderRecord, error)
}

type RecipeRepository interface {
	ListRecipes(ctx context.Context) ([]domain.RecipeLine, error)
}

type InventoryRepository interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// DataSource bundles the three tables behind one ingestion collaborator.
type DataSource interface {
	OrderRepository
	RecipeRepository
	InventoryRepository
}
