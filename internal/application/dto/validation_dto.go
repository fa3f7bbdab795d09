package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposedMovementDTO body para POST /api/validation/movement y elementos de /bulk.
type ProposedMovementDTO struct {
	ItemID         string  `json:"item_id"`
	Type           string  `json:"movement_type"`
	FromLocationID *string `json:"from_location_id,omitempty"`
	ToLocationID   *string `json:"to_location_id,omitempty"`
	Quantity       int64   `json:"quantity_moved"`
	QuantityBefore *int64  `json:"quantity_before,omitempty"`
	QuantityAfter  *int64  `json:"quantity_after,omitempty"`
	Reason         string  `json:"reason,omitempty"`
	Actor          string  `json:"actor,omitempty"`
}

// ValidateMovementRequest body para POST /api/validation/movement.
type ValidateMovementRequest struct {
	Movement ProposedMovementDTO `json:"movement"`
	Strict   bool                `json:"enforce_strict,omitempty"`
}

// ValidateBulkRequest body para POST /api/validation/bulk.
type ValidateBulkRequest struct {
	Movements []ProposedMovementDTO `json:"movements"`
	Atomic    bool                  `json:"atomic,omitempty"`
}

// RuleOverride override parcial de una regla de negocio; campos nil no cambian.
// Solo aplican los campos propios de cada regla, el resto se ignora.
type RuleOverride struct {
	Enabled         *bool            `json:"enabled,omitempty"`
	BlockedStatuses []string         `json:"blocked_statuses,omitempty"`
	Limit           *int             `json:"limit,omitempty"`
	WindowSeconds   *int             `json:"window_seconds,omitempty"`
	AllowNegative   *bool            `json:"allow_negative,omitempty"`
	MaxDepth        *int             `json:"max_depth,omitempty"`
	Threshold       *decimal.Decimal `json:"threshold,omitempty"`
}

// ValidationHealthDTO indicador simple de salud del motor de movimientos.
type ValidationHealthDTO struct {
	MovementsLast24h int `json:"movements_last_24h"`
	ActiveRules      int `json:"active_rules"`
}

// ValidationReportDTO snapshot de reglas + agregados para GET /api/validation/report.
type ValidationReportDTO struct {
	Rules              any                 `json:"rules"` // snapshot tipado de validation.Rules
	MovementTypeCounts map[string]int      `json:"movement_type_counts"`
	Health             ValidationHealthDTO `json:"health"`
	GeneratedAt        time.Time           `json:"generated_at"`
}
