package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is an immutable historical sales fact. Multiple records may
// share the same (date, dish) pair; consumers aggregate as needed.
type OrderRecord struct {
	Date         time.Time `json:"date" db:"order_date"`
	DishName     string    `json:"dish_name" db:"dish_name"`
	QuantitySold int       `json:"quantity_sold" db:"quantity_sold"`
}

// RecipeLine says one serving of DishName consumes QuantityNeeded units of
// MaterialName. A dish has many lines; a material may appear in many dishes.
type RecipeLine struct {
	DishName       string  `json:"dish_name" db:"dish_name"`
	MaterialName   string  `json:"material_name" db:"material_name"`
	QuantityNeeded float64 `json:"quantity_needed" db:"quantity_needed"`
}

// InventoryItem is the single-lot stock record for a material. MaterialName
// is unique across the inventory set; there is no batch/lot granularity.
type InventoryItem struct {
	MaterialName      string    `json:"material_name" db:"material_name"`
	CurrentStock      float64   `json:"current_stock" db:"current_stock"`
	Unit              string    `json:"unit" db:"unit"`
	ExpiryDate        time.Time `json:"expiry_date" db:"expiry_date"`
	CostPerUnit       float64   `json:"cost_per_unit" db:"cost_per_unit"`
	MinimumStockLevel float64   `json:"minimum_stock_level" db:"minimum_stock_level"`
}

// ForecastPoint is one predicted (date, dish) demand quantity. SeasonalFactor
// and WeekendFactor are set by the statistical strategy; Algorithm tags the
// learned strategy's output.
type ForecastPoint struct {
	Date              time.Time `json:"date"`
	DishName          string    `json:"dish_name"`
	PredictedQuantity int       `json:"predicted_quantity"`
	SeasonalFactor    float64   `json:"seasonal_factor,omitempty"`
	WeekendFactor     float64   `json:"weekend_factor,omitempty"`
	Algorithm         string    `json:"algorithm,omitempty"`
}

// MaterialRequirement is the aggregate raw-material demand for one
// (date, material) cell of the forecast horizon.
type MaterialRequirement struct {
	Date                time.Time `json:"date"`
	MaterialName        string    `json:"material_name"`
	TotalMaterialNeeded float64   `json:"total_material_needed"`
}

// RestockDecision is the purchase analysis for one material over the full
// forecast horizon. Only materials with NeedsRestocking true are surfaced.
type RestockDecision struct {
	MaterialName        string          `json:"material_name"`
	TotalMaterialNeeded float64         `json:"total_material_needed"`
	CurrentStock        float64         `json:"current_stock"`
	Shortage            float64         `json:"shortage"`
	RestockQuantity     float64         `json:"restock_quantity"`
	RestockCost         decimal.Decimal `json:"restock_cost"`
	NeedsRestocking     bool            `json:"needs_restocking"`
	// UnknownCost is set when the material has no inventory row, so the
	// cost is computed against an unknown (zero) unit price.
	UnknownCost bool `json:"unknown_cost,omitempty"`
}

// DishYield is how many servings of one dish the remaining stock of an
// expiring material still supports.
type DishYield struct {
	DishName          string `json:"dish_name"`
	MaxDishesPossible int    `json:"max_dishes_possible"`
}

// ExpiringMaterial annotates an inventory item that falls inside the expiry
// scan window. DaysUntilExpiry may be negative for already-expired stock.
type ExpiringMaterial struct {
	InventoryItem
	DaysUntilExpiry int         `json:"days_until_expiry"`
	UsableIn        []DishYield `json:"usable_in,omitempty"`
}

// DishRecommendation is a scored "cook this soon" suggestion.
type DishRecommendation struct {
	DishName              string   `json:"dish_name"`
	MaxServingsPossible   int      `json:"max_servings_possible"`
	CostPerServing        float64  `json:"cost_per_serving"`
	RecommendationScore   float64  `json:"recommendation_score"`
	MaterialAvailability  float64  `json:"material_availability_score"`
	ExpiryUrgency         float64  `json:"expiry_urgency_score"`
	SeasonalPreference    float64  `json:"seasonal_preference_score"`
	CostEfficiency        float64  `json:"cost_efficiency_score"`
	ExpiryMaterialRatio   float64  `json:"expiry_material_ratio"`
	Season                string   `json:"season"`
	UsesExpiringMaterials bool     `json:"uses_expiring_materials"`
	ExpiringMaterialsUsed []string `json:"expiring_materials_used,omitempty"`
}

// ReportSummary is the headline block of an optimization report.
type ReportSummary struct {
	ForecastPeriodDays  int             `json:"forecast_period_days"`
	TotalRestockCost    decimal.Decimal `json:"total_restock_cost"`
	MaterialsToRestock  int             `json:"materials_to_restock"`
	MaterialsNearExpiry int             `json:"materials_near_expiry"`
	RecommendedDishes   int             `json:"recommended_dishes"`
	GeneratedAt         time.Time       `json:"report_generated"`
}

// OptimizationReport bundles the whole pipeline output for one request.
type OptimizationReport struct {
	Summary         ReportSummary         `json:"summary"`
	DemandForecast  []ForecastPoint       `json:"demand_forecast"`
	Requirements    []MaterialRequirement `json:"material_requirements"`
	RestockingNeeds []RestockDecision     `json:"restocking_needs"`
	NearExpiry      []ExpiringMaterial    `json:"near_expiry_materials"`
	Recommendations []DishRecommendation  `json:"dish_recommendations"`
}

// SeasonPreferences maps a season to the dishes customers favor in it and
// the score multiplier those dishes receive.
type SeasonPreferences struct {
	Season          Season   `json:"season"`
	PreferredDishes []string `json:"preferred_dishes"`
	Multiplier      float64  `json:"preference_multiplier"`
}
