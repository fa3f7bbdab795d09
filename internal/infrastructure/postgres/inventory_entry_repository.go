package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-hogar/internal/domain"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

var _ repository.InventoryEntryRepository = (*InventoryEntryRepo)(nil)

// InventoryEntryRepo implementación del libro de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryEntryRepo struct {
	q Querier
}

// NewInventoryEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryEntryRepository(q Querier) *InventoryEntryRepo {
	return &InventoryEntryRepo{q: q}
}

// Get obtiene la fila del par (item, ubicación); nil si no existe.
func (r *InventoryEntryRepo) Get(itemID, locationID string) (*entity.InventoryEntry, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory_entries WHERE item_id = $1 AND location_id = $2`
	return r.scanOne(query, itemID, locationID)
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE); nil si no existe.
func (r *InventoryEntryRepo) GetForUpdate(itemID, locationID string) (*entity.InventoryEntry, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory_entries WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	return r.scanOne(query, itemID, locationID)
}

func (r *InventoryEntryRepo) scanOne(query string, itemID, locationID string) (*entity.InventoryEntry, error) {
	var e entity.InventoryEntry
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&e.ItemID, &e.LocationID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory entry: %w", err)
	}
	return &e, nil
}

// Create inserta una fila nueva. Si el par ya existe devuelve domain.ErrConflict
// (respaldado por el constraint único de la tabla).
func (r *InventoryEntryRepo) Create(e *entity.InventoryEntry) error {
	query := `
		INSERT INTO inventory_entries (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, e.ItemID, e.LocationID, e.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create inventory entry: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza la cantidad del par (item, ubicación).
func (r *InventoryEntryRepo) Upsert(e *entity.InventoryEntry) error {
	query := `
		INSERT INTO inventory_entries (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, e.ItemID, e.LocationID, e.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory entry: %w", err)
	}
	return nil
}

// Delete elimina la fila del par (la cantidad llegó a cero).
func (r *InventoryEntryRepo) Delete(itemID, locationID string) error {
	query := `DELETE FROM inventory_entries WHERE item_id = $1 AND location_id = $2`
	_, err := r.q.Exec(context.Background(), query, itemID, locationID)
	if err != nil {
		return fmt.Errorf("delete inventory entry: %w", err)
	}
	return nil
}

// ListByItem lista las ubicaciones donde hay existencias del artículo.
func (r *InventoryEntryRepo) ListByItem(itemID string) ([]*entity.InventoryEntry, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory_entries WHERE item_id = $1
		ORDER BY quantity DESC`
	return r.scanMany(query, itemID)
}

// ListByLocation lista los artículos con existencias en la ubicación.
func (r *InventoryEntryRepo) ListByLocation(locationID string) ([]*entity.InventoryEntry, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory_entries WHERE location_id = $1
		ORDER BY quantity DESC`
	return r.scanMany(query, locationID)
}

func (r *InventoryEntryRepo) scanMany(query string, arg any) ([]*entity.InventoryEntry, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list inventory entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.InventoryEntry
	for rows.Next() {
		var e entity.InventoryEntry
		if err := rows.Scan(&e.ItemID, &e.LocationID, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
