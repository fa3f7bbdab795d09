package repository

import "github.com/jhoicas/Inventario-hogar/internal/domain/entity"

// InventoryEntryRepository define el puerto de persistencia del libro de inventario
// (item, ubicación) -> cantidad. Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate devuelven nil (sin error) cuando no existe la fila.
type InventoryEntryRepository interface {
	Get(itemID, locationID string) (*entity.InventoryEntry, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, locationID string) (*entity.InventoryEntry, error)
	// Create inserta una fila nueva; devuelve domain.ErrConflict si el par ya existe
	// (respaldado por el constraint único de la tabla).
	Create(e *entity.InventoryEntry) error
	Upsert(e *entity.InventoryEntry) error
	Delete(itemID, locationID string) error
	ListByItem(itemID string) ([]*entity.InventoryEntry, error)
	ListByLocation(locationID string) ([]*entity.InventoryEntry, error)
}
