package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body para POST /api/inventory/entries.
type CreateEntryRequest struct {
	ItemID     string `json:"item_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Reason     string `json:"reason,omitempty"`
	Actor      string `json:"actor,omitempty"`
}

// MoveRequest body para POST /api/inventory/move.
type MoveRequest struct {
	ItemID         string `json:"item_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Reason         string `json:"reason,omitempty"`
	Actor          string `json:"actor,omitempty"`
}

// SplitRequest body para POST /api/inventory/split.
type SplitRequest struct {
	ItemID           string `json:"item_id"`
	SourceLocationID string `json:"source_location_id"`
	DestLocationID   string `json:"dest_location_id"`
	QuantityToMove   int64  `json:"quantity_to_move"`
	Reason           string `json:"reason,omitempty"`
	Actor            string `json:"actor,omitempty"`
}

// MergeRequest body para POST /api/inventory/merge.
type MergeRequest struct {
	ItemID           string   `json:"item_id"`
	LocationIDs      []string `json:"location_ids"`
	TargetLocationID string   `json:"target_location_id"`
	Reason           string   `json:"reason,omitempty"`
	Actor            string   `json:"actor,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjust.
type AdjustRequest struct {
	ItemID      string `json:"item_id"`
	LocationID  string `json:"location_id"`
	NewQuantity int64  `json:"new_quantity"`
	Reason      string `json:"reason,omitempty"`
	Actor       string `json:"actor,omitempty"`
}

// InventoryEntryResponse una fila del libro de inventario.
type InventoryEntryResponse struct {
	ItemID     string    `json:"item_id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemLocationDTO dónde está un artículo y cuánto hay.
type ItemLocationDTO struct {
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	FullPath     string    `json:"full_path"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LocationItemDTO un artículo presente en una ubicación, con valorización.
type LocationItemDTO struct {
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Status     string          `json:"status"`
	Quantity   int64           `json:"quantity"`
	UnitValue  decimal.Decimal `json:"unit_value"`
	TotalValue decimal.Decimal `json:"total_value"` // UnitValue * Quantity
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LocationReportDTO reporte agregado de una ubicación.
type LocationReportDTO struct {
	LocationID    string            `json:"location_id"`
	Name          string            `json:"name"`
	FullPath      string            `json:"full_path"`
	ItemCount     int               `json:"item_count"`
	TotalQuantity int64             `json:"total_quantity"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	Items         []LocationItemDTO `json:"items"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// LocationBreakdownDTO agregados por ubicación en el resumen global.
type LocationBreakdownDTO struct {
	LocationID string          `json:"location_id"`
	Name       string          `json:"name"`
	FullPath   string          `json:"full_path"`
	Items      int             `json:"items"`
	Quantity   int64           `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// CategoryBreakdownDTO agregados por categoría en el resumen global.
type CategoryBreakdownDTO struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Items      int             `json:"items"`
	Quantity   int64           `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// InventorySummaryDTO resumen global del inventario para el dashboard.
type InventorySummaryDTO struct {
	DistinctItems     int                    `json:"distinct_items"`
	TotalQuantity     int64                  `json:"total_quantity"`
	DistinctLocations int                    `json:"distinct_locations"`
	TotalValue        decimal.Decimal        `json:"total_value"`
	ByLocation        []LocationBreakdownDTO `json:"by_location"`
	ByCategory        []CategoryBreakdownDTO `json:"by_category"`
}
