package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el decremento en origen, el incremento en destino y (en modo atómico) la escritura
// del historial se apliquen como una sola unidad: nunca es observable una aplicación parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.InventoryEntryRepository,
		historyRepo repository.MovementHistoryRepository,
	) error) error
}
