package entity

import "time"

// InventoryEntry es una fila del libro de inventario: cuánto hay de un artículo en una ubicación.
// Invariante: a lo sumo una fila por par (item, ubicación) y cantidad siempre >= 1;
// cuando la cantidad llega a 0 la fila se elimina, nunca se guarda en cero.
type InventoryEntry struct {
	ItemID     string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
