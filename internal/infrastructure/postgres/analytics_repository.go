package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool (no necesita tx).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// InventorySummary calcula los agregados globales y los desgloses por ubicación y categoría.
func (r *AnalyticsRepo) InventorySummary() (*repository.InventorySummary, error) {
	ctx := context.Background()
	summary := &repository.InventorySummary{}

	totals := `
		SELECT
			count(DISTINCT e.item_id),
			coalesce(sum(e.quantity), 0),
			count(DISTINCT e.location_id),
			coalesce(sum(e.quantity * i.current_value), 0)
		FROM inventory_entries e
		JOIN items i ON i.id = e.item_id`
	err := r.q.QueryRow(ctx, totals).Scan(
		&summary.DistinctItems, &summary.TotalQuantity,
		&summary.DistinctLocations, &summary.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}

	byLocation := `
		SELECT l.id, l.name, l.full_path,
			count(DISTINCT e.item_id),
			coalesce(sum(e.quantity), 0),
			coalesce(sum(e.quantity * i.current_value), 0)
		FROM inventory_entries e
		JOIN locations l ON l.id = e.location_id
		JOIN items i ON i.id = e.item_id
		GROUP BY l.id, l.name, l.full_path
		ORDER BY l.full_path`
	rows, err := r.q.Query(ctx, byLocation)
	if err != nil {
		return nil, fmt.Errorf("breakdown by location: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b repository.LocationBreakdown
		if err := rows.Scan(&b.LocationID, &b.Name, &b.FullPath, &b.Items, &b.Quantity, &b.Value); err != nil {
			return nil, fmt.Errorf("scan location breakdown: %w", err)
		}
		summary.ByLocation = append(summary.ByLocation, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byCategory := `
		SELECT coalesce(c.id, ''), coalesce(c.name, 'Sin categoría'),
			count(DISTINCT e.item_id),
			coalesce(sum(e.quantity), 0),
			coalesce(sum(e.quantity * i.current_value), 0)
		FROM inventory_entries e
		JOIN items i ON i.id = e.item_id
		LEFT JOIN categories c ON c.id = i.category_id
		GROUP BY c.id, c.name
		ORDER BY sum(e.quantity * i.current_value) DESC`
	catRows, err := r.q.Query(ctx, byCategory)
	if err != nil {
		return nil, fmt.Errorf("breakdown by category: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var b repository.CategoryBreakdown
		if err := catRows.Scan(&b.CategoryID, &b.Name, &b.Items, &b.Quantity, &b.Value); err != nil {
			return nil, fmt.Errorf("scan category breakdown: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, b)
	}
	return summary, catRows.Err()
}
