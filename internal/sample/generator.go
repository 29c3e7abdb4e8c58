// Package sample produces synthetic input tables for demos and local runs.
package sample

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

// Generator builds a coherent trio of order history, recipe book and
// inventory. The same seed yields the same tables.
type Generator struct {
	fake faker.Faker
}

func NewGenerator(seed int64) *Generator {
	return &Generator{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

type recipeSpec struct {
	dish      string
	baseDaily int
	materials []domain.RecipeLine
}

// The fixed five-dish book mirrors the seasonal preference defaults so
// generated data exercises the seasonal boost paths.
var recipeBook = []recipeSpec{
	{
		dish:      "Chicken Curry",
		baseDaily: 18,
		materials: []domain.RecipeLine{
			{DishName: "Chicken Curry", MaterialName: "Chicken Breast", QuantityNeeded: 0.3},
			{DishName: "Chicken Curry", MaterialName: "Curry Paste", QuantityNeeded: 0.05},
			{DishName: "Chicken Curry", MaterialName: "Onions", QuantityNeeded: 0.1},
		},
	},
	{
		dish:      "Fish Soup",
		baseDaily: 12,
		materials: []domain.RecipeLine{
			{DishName: "Fish Soup", MaterialName: "Fish Fillet", QuantityNeeded: 0.25},
			{DishName: "Fish Soup", MaterialName: "Onions", QuantityNeeded: 0.05},
			{DishName: "Fish Soup", MaterialName: "Tomatoes", QuantityNeeded: 0.1},
		},
	},
	{
		dish:      "Vegetable Salad",
		baseDaily: 15,
		materials: []domain.RecipeLine{
			{DishName: "Vegetable Salad", MaterialName: "Lettuce", QuantityNeeded: 0.2},
			{DishName: "Vegetable Salad", MaterialName: "Tomatoes", QuantityNeeded: 0.15},
			{DishName: "Vegetable Salad", MaterialName: "Olive Oil", QuantityNeeded: 0.02},
		},
	},
	{
		dish:      "Pasta Marinara",
		baseDaily: 20,
		materials: []domain.RecipeLine{
			{DishName: "Pasta Marinara", MaterialName: "Pasta", QuantityNeeded: 0.12},
			{DishName: "Pasta Marinara", MaterialName: "Tomatoes", QuantityNeeded: 0.2},
			{DishName: "Pasta Marinara", MaterialName: "Olive Oil", QuantityNeeded: 0.03},
		},
	},
	{
		dish:      "Beef Steak",
		baseDaily: 8,
		materials: []domain.RecipeLine{
			{DishName: "Beef Steak", MaterialName: "Beef Sirloin", QuantityNeeded: 0.35},
			{DishName: "Beef Steak", MaterialName: "Butter", QuantityNeeded: 0.03},
		},
	},
}

type materialSpec struct {
	unit       string
	cost       float64
	minLevel   float64
	shelfDays  int
	stockScale float64
}

var materialCatalog = map[string]materialSpec{
	"Chicken Breast": {unit: "kg", cost: 6.5, minLevel: 10, shelfDays: 4, stockScale: 12},
	"Curry Paste":    {unit: "kg", cost: 8.0, minLevel: 2, shelfDays: 60, stockScale: 3},
	"Onions":         {unit: "kg", cost: 1.2, minLevel: 8, shelfDays: 20, stockScale: 10},
	"Fish Fillet":    {unit: "kg", cost: 9.0, minLevel: 5, shelfDays: 2, stockScale: 6},
	"Tomatoes":       {unit: "kg", cost: 2.5, minLevel: 10, shelfDays: 6, stockScale: 14},
	"Lettuce":        {unit: "kg", cost: 2.0, minLevel: 6, shelfDays: 3, stockScale: 8},
	"Olive Oil":      {unit: "l", cost: 7.0, minLevel: 3, shelfDays: 180, stockScale: 5},
	"Pasta":          {unit: "kg", cost: 1.8, minLevel: 12, shelfDays: 120, stockScale: 18},
	"Beef Sirloin":   {unit: "kg", cost: 14.0, minLevel: 4, shelfDays: 5, stockScale: 5},
	"Butter":         {unit: "kg", cost: 5.5, minLevel: 2, shelfDays: 30, stockScale: 3},
}

// GenerateOrders emits days of history ending yesterday, shaped by the same
// seasonal and weekend factors the statistical forecaster assumes.
func (g *Generator) GenerateOrders(now time.Time, days int) []domain.OrderRecord {
	orders := make([]domain.OrderRecord, 0, days*len(recipeBook))
	start := now.AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		seasonal := seasonalFactor(date)
		weekend := 1.0
		if domain.IsWeekend(date) {
			weekend = 1.2
		}

		for _, spec := range recipeBook {
			noise := float64(g.fake.IntBetween(-20, 20)) / 100
			qty := int(float64(spec.baseDaily) * seasonal * weekend * (1 + noise))
			if qty < 0 {
				qty = 0
			}
			orders = append(orders, domain.OrderRecord{
				Date:         date,
				DishName:     spec.dish,
				QuantitySold: qty,
			})
		}
	}
	return orders
}

// GenerateRecipes returns the fixed recipe book.
func (g *Generator) GenerateRecipes() []domain.RecipeLine {
	recipes := make([]domain.RecipeLine, 0, 16)
	for _, spec := range recipeBook {
		recipes = append(recipes, spec.materials...)
	}
	return recipes
}

// GenerateInventory builds one lot per catalog material. Stock levels and
// expiry dates are jittered so some lots land near expiry or below floor.
func (g *Generator) GenerateInventory(now time.Time) []domain.InventoryItem {
	inventory := make([]domain.InventoryItem, 0, len(materialCatalog))
	for _, spec := range recipeBook {
		for _, line := range spec.materials {
			if containsMaterial(inventory, line.MaterialName) {
				continue
			}
			mat := materialCatalog[line.MaterialName]
			stock := mat.stockScale * (0.5 + float64(g.fake.IntBetween(0, 100))/100)
			expiryJitter := g.fake.IntBetween(-1, 2)
			inventory = append(inventory, domain.InventoryItem{
				MaterialName:      line.MaterialName,
				CurrentStock:      float64(int(stock*100)) / 100,
				Unit:              mat.unit,
				ExpiryDate:        now.AddDate(0, 0, mat.shelfDays+expiryJitter),
				CostPerUnit:       mat.cost,
				MinimumStockLevel: mat.minLevel,
			})
		}
	}
	return inventory
}

func seasonalFactor(date time.Time) float64 {
	switch domain.SeasonOf(date) {
	case domain.Winter:
		return 1.3
	case domain.Summer:
		return 1.1
	default:
		return 1.0
	}
}

func containsMaterial(items []domain.InventoryItem, name string) bool {
	for _, item := range items {
		if item.MaterialName == name {
			return true
		}
	}
	return false
}
