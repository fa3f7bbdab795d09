package validation

import (
	"sync/atomic"
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nombres de reglas de negocio. Registro cerrado: cada regla tiene su propio
// struct de parámetros tipado en lugar de un mapa abierto de strings.
const (
	RuleItemStatus           = "item_status_constraints"
	RuleMaxConcurrent        = "max_concurrent_movements"
	RuleQuantityConsistency  = "quantity_consistency"
	RuleLocationHierarchy    = "location_hierarchy_validation"
	RuleDuplicatePrevention  = "duplicate_movement_prevention"
	RuleValueTracking        = "value_tracking"
)

// ItemStatusConfig rechaza movimientos de artículos con estado bloqueado.
type ItemStatusConfig struct {
	Enabled         bool     `json:"enabled"`
	BlockedStatuses []string `json:"blocked_statuses"`
}

// MaxConcurrentConfig limita los movimientos de un artículo por ventana deslizante.
type MaxConcurrentConfig struct {
	Enabled bool          `json:"enabled"`
	Limit   int           `json:"limit"`
	Window  time.Duration `json:"window"`
}

// QuantityConsistencyConfig impide inventario negativo en origen, salvo que se permita.
type QuantityConsistencyConfig struct {
	Enabled       bool `json:"enabled"`
	AllowNegative bool `json:"allow_negative"`
}

// LocationHierarchyConfig limita la profundidad de la ubicación destino.
type LocationHierarchyConfig struct {
	Enabled  bool `json:"enabled"`
	MaxDepth int  `json:"max_depth"`
}

// DuplicatePreventionConfig advierte (nunca bloquea) ante movimientos idénticos recientes.
type DuplicatePreventionConfig struct {
	Enabled bool          `json:"enabled"`
	Window  time.Duration `json:"window"`
}

// ValueTrackingConfig solo informativa: deja constancia de escrutinio extra en artículos de alto valor.
type ValueTrackingConfig struct {
	Enabled   bool            `json:"enabled"`
	Threshold decimal.Decimal `json:"threshold"`
}

// Rules es un snapshot inmutable de la configuración de todas las reglas.
// Los overrides producen un snapshot nuevo; nunca se muta uno publicado.
type Rules struct {
	ItemStatus          ItemStatusConfig          `json:"item_status_constraints"`
	MaxConcurrent       MaxConcurrentConfig       `json:"max_concurrent_movements"`
	QuantityConsistency QuantityConsistencyConfig `json:"quantity_consistency"`
	LocationHierarchy   LocationHierarchyConfig   `json:"location_hierarchy_validation"`
	DuplicatePrevention DuplicatePreventionConfig `json:"duplicate_movement_prevention"`
	ValueTracking       ValueTrackingConfig       `json:"value_tracking"`
}

// DefaultRules devuelve la configuración inicial de las reglas de negocio.
func DefaultRules() Rules {
	return Rules{
		ItemStatus: ItemStatusConfig{
			Enabled:         true,
			BlockedStatuses: []string{entity.ItemStatusDisposed, entity.ItemStatusSold, entity.ItemStatusLost},
		},
		MaxConcurrent: MaxConcurrentConfig{
			Enabled: true,
			Limit:   100,
			Window:  time.Hour,
		},
		QuantityConsistency: QuantityConsistencyConfig{
			Enabled:       true,
			AllowNegative: false,
		},
		LocationHierarchy: LocationHierarchyConfig{
			Enabled:  true,
			MaxDepth: 4,
		},
		DuplicatePrevention: DuplicatePreventionConfig{
			Enabled: true,
			Window:  5 * time.Minute,
		},
		ValueTracking: ValueTrackingConfig{
			Enabled:   true,
			Threshold: decimal.NewFromInt(1000),
		},
	}
}

// ActiveCount cuenta las reglas habilitadas en el snapshot.
func (r Rules) ActiveCount() int {
	count := 0
	for _, enabled := range []bool{
		r.ItemStatus.Enabled, r.MaxConcurrent.Enabled, r.QuantityConsistency.Enabled,
		r.LocationHierarchy.Enabled, r.DuplicatePrevention.Enabled, r.ValueTracking.Enabled,
	} {
		if enabled {
			count++
		}
	}
	return count
}

// Registry mantiene el snapshot vigente de reglas. Los lectores concurrentes pueden
// observar el snapshot anterior o el nuevo durante un override; nunca uno intermedio.
// Los overrides viven solo en memoria y no sobreviven un reinicio del proceso.
type Registry struct {
	current atomic.Pointer[Rules]
}

// NewRegistry construye el registro con los valores por defecto.
func NewRegistry() *Registry {
	r := &Registry{}
	defaults := DefaultRules()
	r.current.Store(&defaults)
	return r
}

// Snapshot devuelve la configuración vigente (copia por valor).
func (r *Registry) Snapshot() Rules {
	return *r.current.Load()
}

// Apply construye un snapshot nuevo a partir del vigente más los overrides parciales
// y lo publica atómicamente. Nombres de regla desconocidos se ignoran.
func (r *Registry) Apply(overrides map[string]dto.RuleOverride) Rules {
	next := r.Snapshot()
	for name, ov := range overrides {
		switch name {
		case RuleItemStatus:
			applyBool(ov.Enabled, &next.ItemStatus.Enabled)
			if len(ov.BlockedStatuses) > 0 {
				next.ItemStatus.BlockedStatuses = append([]string(nil), ov.BlockedStatuses...)
			}
		case RuleMaxConcurrent:
			applyBool(ov.Enabled, &next.MaxConcurrent.Enabled)
			if ov.Limit != nil {
				next.MaxConcurrent.Limit = *ov.Limit
			}
			if ov.WindowSeconds != nil {
				next.MaxConcurrent.Window = time.Duration(*ov.WindowSeconds) * time.Second
			}
		case RuleQuantityConsistency:
			applyBool(ov.Enabled, &next.QuantityConsistency.Enabled)
			applyBool(ov.AllowNegative, &next.QuantityConsistency.AllowNegative)
		case RuleLocationHierarchy:
			applyBool(ov.Enabled, &next.LocationHierarchy.Enabled)
			if ov.MaxDepth != nil {
				next.LocationHierarchy.MaxDepth = *ov.MaxDepth
			}
		case RuleDuplicatePrevention:
			applyBool(ov.Enabled, &next.DuplicatePrevention.Enabled)
			if ov.WindowSeconds != nil {
				next.DuplicatePrevention.Window = time.Duration(*ov.WindowSeconds) * time.Second
			}
		case RuleValueTracking:
			applyBool(ov.Enabled, &next.ValueTracking.Enabled)
			if ov.Threshold != nil {
				next.ValueTracking.Threshold = *ov.Threshold
			}
		}
	}
	r.current.Store(&next)
	return next
}

func applyBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}
