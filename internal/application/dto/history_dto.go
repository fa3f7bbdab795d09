package dto

import "time"

// MovementRecordDTO una fila del historial de movimientos, con descripción legible.
type MovementRecordDTO struct {
	ID                 string    `json:"id"`
	ItemID             string    `json:"item_id"`
	Type               string    `json:"movement_type"`
	FromLocationID     *string   `json:"from_location_id,omitempty"`
	ToLocationID       *string   `json:"to_location_id,omitempty"`
	QuantityMoved      int64     `json:"quantity_moved"`
	QuantityBeforeFrom *int64    `json:"quantity_before_from,omitempty"`
	QuantityAfterFrom  *int64    `json:"quantity_after_from,omitempty"`
	QuantityBeforeTo   *int64    `json:"quantity_before_to,omitempty"`
	QuantityAfterTo    *int64    `json:"quantity_after_to,omitempty"`
	Reason             string    `json:"reason,omitempty"`
	Actor              string    `json:"actor,omitempty"`
	Description        string    `json:"movement_description"`
	CreatedAt          time.Time `json:"created_at"`
}

// MovementTypeSummaryDTO conteo y porcentaje de un tipo de movimiento.
type MovementTypeSummaryDTO struct {
	Type       string  `json:"movement_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MovementSummaryDTO resumen del historial por tipo en un rango de fechas.
type MovementSummaryDTO struct {
	Total  int                      `json:"total"`
	ByType []MovementTypeSummaryDTO `json:"by_type"`
	From   *time.Time               `json:"from,omitempty"`
	To     *time.Time               `json:"to,omitempty"`
}

// LocationPairStatDTO estadísticas de movimientos entre un par de ubicaciones.
type LocationPairStatDTO struct {
	FromLocationID string `json:"from_location_id"`
	FromName       string `json:"from_name,omitempty"`
	ToLocationID   string `json:"to_location_id"`
	ToName         string `json:"to_name,omitempty"`
	Movements      int    `json:"movements"`
	TotalQuantity  int64  `json:"total_quantity"`
}
