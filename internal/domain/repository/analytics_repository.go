package repository

import "github.com/shopspring/decimal"

// LocationBreakdown agregados de inventario por ubicación.
type LocationBreakdown struct {
	LocationID string
	Name       string
	FullPath   string
	Items      int
	Quantity   int64
	Value      decimal.Decimal
}

// CategoryBreakdown agregados de inventario por categoría de artículo.
type CategoryBreakdown struct {
	CategoryID string
	Name       string
	Items      int
	Quantity   int64
	Value      decimal.Decimal
}

// InventorySummary agregados globales del inventario.
type InventorySummary struct {
	DistinctItems     int
	TotalQuantity     int64
	DistinctLocations int
	TotalValue        decimal.Decimal
	ByLocation        []LocationBreakdown
	ByCategory        []CategoryBreakdown
}

// AnalyticsRepository define el puerto de consultas agregadas (solo lectura).
type AnalyticsRepository interface {
	InventorySummary() (*InventorySummary, error)
}
