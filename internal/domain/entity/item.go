package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un artículo del hogar.
const (
	ItemStatusActive   = "active"
	ItemStatusDisposed = "disposed"
	ItemStatusSold     = "sold"
	ItemStatusLost     = "lost"
)

// Item representa un artículo del inventario del hogar.
// La cantidad por ubicación se maneja en InventoryEntry; aquí solo atributos propios.
type Item struct {
	ID           string
	Name         string
	Description  string
	Status       string          // active, disposed, sold, lost
	CategoryID   string          // opcional
	CurrentValue decimal.Decimal // valor estimado unitario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
