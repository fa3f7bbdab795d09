package repository

import (
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
)

// HistoryFilter filtros para listar el historial de movimientos.
// Campos vacíos / nil no filtran.
type HistoryFilter struct {
	ItemID     string
	LocationID string // coincide contra origen o destino
	Type       string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// LocationPairStat estadísticas de movimientos por par (origen, destino).
type LocationPairStat struct {
	FromLocationID string
	ToLocationID   string
	Movements      int
	TotalQuantity  int64
}

// MovementHistoryRepository define el puerto de persistencia del libro de auditoría.
// Es append-only: no existe Update ni Delete.
type MovementHistoryRepository interface {
	Create(rec *entity.MovementHistoryRecord) error
	List(f HistoryFilter) ([]*entity.MovementHistoryRecord, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.MovementHistoryRecord, error)
	// CountByItemSince cuenta movimientos del artículo desde un instante (ventanas del validador).
	CountByItemSince(itemID string, since time.Time) (int, error)
	// CountSince cuenta movimientos globales desde un instante (indicador de salud).
	CountSince(since time.Time) (int, error)
	// ExistsDuplicateSince indica si existe un movimiento idéntico
	// (mismo item/tipo/origen/destino/cantidad) desde un instante.
	ExistsDuplicateSince(itemID, movementType string, fromLocationID, toLocationID *string, quantity int64, since time.Time) (bool, error)
	// CountByType agrega conteos por tipo de movimiento; itemID vacío = global.
	CountByType(itemID string, from, to *time.Time) (map[string]int, error)
	LocationPairStats(from, to *time.Time) ([]*LocationPairStat, error)
}
