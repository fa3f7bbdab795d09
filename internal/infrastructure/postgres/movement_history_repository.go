package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

var _ repository.MovementHistoryRepository = (*MovementHistoryRepo)(nil)

// MovementHistoryRepo implementación del libro de auditoría sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: solo INSERT y consultas.
type MovementHistoryRepo struct {
	q Querier
}

// NewMovementHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementHistoryRepository(q Querier) *MovementHistoryRepo {
	return &MovementHistoryRepo{q: q}
}

const historyColumns = `
	id, item_id, movement_type, from_location_id, to_location_id,
	quantity_moved, qty_before_from, qty_after_from, qty_before_to, qty_after_to,
	reason, actor, created_at`

// Create inserta un registro de auditoría; si no trae ID se genera uno.
func (r *MovementHistoryRepo) Create(rec *entity.MovementHistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ItemID, rec.Type, rec.FromLocationID, rec.ToLocationID,
		rec.QuantityMoved, rec.QuantityBeforeFrom, rec.QuantityAfterFrom,
		rec.QuantityBeforeTo, rec.QuantityAfterTo,
		rec.Reason, rec.Actor, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement history: %w", err)
	}
	return nil
}

// List consulta el historial con filtros opcionales, más reciente primero.
func (r *MovementHistoryRepo) List(f repository.HistoryFilter) ([]*entity.MovementHistoryRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + historyColumns + ` FROM movement_history WHERE 1=1`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.ItemID != "" {
		sb.WriteString(" AND item_id = " + arg(f.ItemID))
	}
	if f.LocationID != "" {
		p := arg(f.LocationID)
		sb.WriteString(" AND (from_location_id = " + p + " OR to_location_id = " + p + ")")
	}
	if f.Type != "" {
		sb.WriteString(" AND movement_type = " + arg(f.Type))
	}
	if f.From != nil {
		sb.WriteString(" AND created_at >= " + arg(*f.From))
	}
	if f.To != nil {
		sb.WriteString(" AND created_at < " + arg(*f.To))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}
	if f.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(f.Offset))
	}
	return r.queryRecords(sb.String(), args...)
}

// ListByItem lista el historial de un artículo, más reciente primero.
func (r *MovementHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MovementHistoryRecord, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM movement_history WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryRecords(query, itemID, limit, offset)
}

func (r *MovementHistoryRepo) queryRecords(query string, args ...any) ([]*entity.MovementHistoryRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement history: %w", err)
	}
	defer rows.Close()

	var records []*entity.MovementHistoryRecord
	for rows.Next() {
		var rec entity.MovementHistoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ItemID, &rec.Type, &rec.FromLocationID, &rec.ToLocationID,
			&rec.QuantityMoved, &rec.QuantityBeforeFrom, &rec.QuantityAfterFrom,
			&rec.QuantityBeforeTo, &rec.QuantityAfterTo,
			&rec.Reason, &rec.Actor, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement history: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// CountByItemSince cuenta movimientos del artículo desde un instante.
func (r *MovementHistoryRepo) CountByItemSince(itemID string, since time.Time) (int, error) {
	query := `SELECT count(*) FROM movement_history WHERE item_id = $1 AND created_at >= $2`
	var count int
	if err := r.q.QueryRow(context.Background(), query, itemID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements by item: %w", err)
	}
	return count, nil
}

// CountSince cuenta movimientos globales desde un instante.
func (r *MovementHistoryRepo) CountSince(since time.Time) (int, error) {
	query := `SELECT count(*) FROM movement_history WHERE created_at >= $1`
	var count int
	if err := r.q.QueryRow(context.Background(), query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

// ExistsDuplicateSince indica si ya se registró un movimiento idéntico
// (mismo item/tipo/origen/destino/cantidad) desde un instante.
func (r *MovementHistoryRepo) ExistsDuplicateSince(itemID, movementType string, fromLocationID, toLocationID *string, quantity int64, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM movement_history
			WHERE item_id = $1 AND movement_type = $2
			  AND from_location_id IS NOT DISTINCT FROM $3
			  AND to_location_id IS NOT DISTINCT FROM $4
			  AND quantity_moved = $5 AND created_at >= $6
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query,
		itemID, movementType, fromLocationID, toLocationID, quantity, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate movement: %w", err)
	}
	return exists, nil
}

// CountByType agrega conteos por tipo de movimiento; itemID vacío = global.
func (r *MovementHistoryRepo) CountByType(itemID string, from, to *time.Time) (map[string]int, error) {
	query := `
		SELECT movement_type, count(*)
		FROM movement_history
		WHERE ($1 = '' OR item_id = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		GROUP BY movement_type`
	rows, err := r.q.Query(context.Background(), query, itemID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count movements by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var movementType string
		var count int
		if err := rows.Scan(&movementType, &count); err != nil {
			return nil, fmt.Errorf("scan movement count: %w", err)
		}
		counts[movementType] = count
	}
	return counts, rows.Err()
}

// LocationPairStats agrega movimientos por par (origen, destino), más activos primero.
func (r *MovementHistoryRepo) LocationPairStats(from, to *time.Time) ([]*repository.LocationPairStat, error) {
	query := `
		SELECT from_location_id, to_location_id, count(*), coalesce(sum(abs(quantity_moved)), 0)
		FROM movement_history
		WHERE from_location_id IS NOT NULL AND to_location_id IS NOT NULL
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		GROUP BY from_location_id, to_location_id
		ORDER BY count(*) DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("location pair stats: %w", err)
	}
	defer rows.Close()

	var stats []*repository.LocationPairStat
	for rows.Next() {
		var s repository.LocationPairStat
		if err := rows.Scan(&s.FromLocationID, &s.ToLocationID, &s.Movements, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan location pair stat: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
