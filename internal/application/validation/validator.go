package validation

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
)

// Guardia de rendimiento: más de perfGuardLimit movimientos del mismo artículo en el
// último minuto sugiere un caller en bucle descontrolado. Solo advierte.
const (
	perfGuardWindow = time.Minute
	perfGuardLimit  = 20
)

// ProposedMovement describe una mutación propuesta, antes de aplicarla.
// Quantity es con signo en adjust (delta del recuento) y positivo en el resto.
type ProposedMovement struct {
	ItemID         string
	Type           string
	FromLocationID *string
	ToLocationID   *string
	Quantity       int64
	QuantityBefore *int64
	QuantityAfter  *int64
	Reason         string
	Actor          string
}

// FromDTO adapta el request HTTP a la representación interna.
func FromDTO(d dto.ProposedMovementDTO) ProposedMovement {
	return ProposedMovement{
		ItemID:         d.ItemID,
		Type:           d.Type,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		Quantity:       d.Quantity,
		QuantityBefore: d.QuantityBefore,
		QuantityAfter:  d.QuantityAfter,
		Reason:         d.Reason,
		Actor:          d.Actor,
	}
}

// Result es el veredicto transitorio de una validación; no se persiste.
// Las violaciones de reglas de negocio viajan en Errors/Warnings, nunca como error de Go.
type Result struct {
	IsValid      bool           `json:"is_valid"`
	Errors       []string       `json:"errors"`
	Warnings     []string       `json:"warnings"`
	RulesApplied []string       `json:"rules_applied"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func newResult() *Result {
	return &Result{
		IsValid:      true,
		Errors:       []string{},
		Warnings:     []string{},
		RulesApplied: []string{},
		Metadata:     map[string]any{},
	}
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.IsValid = false
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) ruleApplied(name string) {
	r.RulesApplied = append(r.RulesApplied, name)
}

// Validator evalúa movimientos propuestos contra las reglas de negocio sin mutar estado.
// Solo aconseja: el caller decide si aplica la mutación.
type Validator struct {
	registry     *Registry
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	entryRepo    repository.InventoryEntryRepository
	historyRepo  repository.MovementHistoryRepository
	log          *logger.Logger
}

// NewValidator construye el validador con su registro de reglas.
func NewValidator(
	registry *Registry,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	entryRepo repository.InventoryEntryRepository,
	historyRepo repository.MovementHistoryRepository,
	log *logger.Logger,
) *Validator {
	return &Validator{
		registry:     registry,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		entryRepo:    entryRepo,
		historyRepo:  historyRepo,
		log:          log,
	}
}

// ApplyOverrides aplica overrides parciales de reglas en memoria y devuelve el snapshot resultante.
func (v *Validator) ApplyOverrides(overrides map[string]dto.RuleOverride) Rules {
	return v.registry.Apply(overrides)
}

// Rules devuelve el snapshot vigente de reglas.
func (v *Validator) Rules() Rules {
	return v.registry.Snapshot()
}

// ValidateMovement evalúa un movimiento propuesto y devuelve siempre un Result bien formado:
// jamás lanza por violaciones de negocio, y un fallo interno inesperado se captura,
// se loguea y se convierte en un único error sintético.
// Con strict=true las advertencias también invalidan el resultado.
func (v *Validator) ValidateMovement(p ProposedMovement, strict bool) (res *Result) {
	res = newResult()
	rules := v.registry.Snapshot()

	defer func() {
		if r := recover(); r != nil {
			v.log.Error().Interface("panic", r).Str("item_id", p.ItemID).
				Msg("fallo interno del validador")
			res.Errors = append(res.Errors, "error interno del validador")
			res.IsValid = false
		}
	}()

	v.structural(p, res)
	item, _, toLoc := v.resolveEntities(p, res)
	v.businessRules(rules, p, item, toLoc, res)
	v.typeChecks(p, item, res)
	v.performanceGuard(p, res)

	if strict && len(res.Warnings) > 0 {
		res.IsValid = false
	}
	return res
}

// structural valida la forma del movimiento, sin consultar entidades.
func (v *Validator) structural(p ProposedMovement, res *Result) {
	if !entity.IsValidMovementType(p.Type) {
		res.addError("tipo de movimiento desconocido: %q", p.Type)
		return
	}
	switch p.Type {
	case entity.MovementTypeMove, entity.MovementTypeSplit:
		if p.FromLocationID == nil || p.ToLocationID == nil {
			res.addError("el movimiento %s requiere ubicación origen y destino", p.Type)
		} else if *p.FromLocationID == *p.ToLocationID {
			res.addError("la ubicación origen y destino no pueden ser la misma")
		}
	case entity.MovementTypeCreate:
		if p.ToLocationID == nil {
			res.addError("create requiere ubicación destino")
		}
		if p.FromLocationID != nil {
			res.addWarning("create no debería llevar ubicación origen")
		}
	}
	// Consistencia aritmética: si el caller aporta before/after, el delta debe
	// coincidir con la cantidad movida (con signo).
	if p.QuantityBefore != nil && p.QuantityAfter != nil {
		if *p.QuantityAfter-*p.QuantityBefore != p.Quantity {
			res.addError("cantidades inconsistentes: after (%d) - before (%d) != movido (%d)",
				*p.QuantityAfter, *p.QuantityBefore, p.Quantity)
		}
	}
}

// resolveEntities resuelve artículo y ubicaciones. Entidades ausentes generan error de
// validación; un fallo inesperado del repositorio se convierte en un único error genérico.
func (v *Validator) resolveEntities(p ProposedMovement, res *Result) (*entity.Item, *entity.Location, *entity.Location) {
	internalFault := false
	fault := func(err error, what string) {
		v.log.Error().Err(err).Str("item_id", p.ItemID).Msgf("validador: error consultando %s", what)
		if !internalFault {
			res.addError("error interno consultando entidades")
			internalFault = true
		}
	}

	item, err := v.itemRepo.GetByID(p.ItemID)
	if err != nil {
		fault(err, "artículo")
	} else if item == nil {
		res.addError("artículo no encontrado: %s", p.ItemID)
	} else {
		res.Metadata["item_name"] = item.Name
		res.Metadata["item_status"] = item.Status
	}

	var fromLoc, toLoc *entity.Location
	if p.FromLocationID != nil {
		fromLoc, err = v.locationRepo.GetByID(*p.FromLocationID)
		if err != nil {
			fault(err, "ubicación origen")
		} else if fromLoc == nil {
			res.addError("ubicación origen no encontrada: %s", *p.FromLocationID)
		} else {
			res.Metadata["from_location_path"] = fromLoc.FullPath
		}
	}
	if p.ToLocationID != nil {
		toLoc, err = v.locationRepo.GetByID(*p.ToLocationID)
		if err != nil {
			fault(err, "ubicación destino")
		} else if toLoc == nil {
			res.addError("ubicación destino no encontrada: %s", *p.ToLocationID)
		} else {
			res.Metadata["to_location_path"] = toLoc.FullPath
		}
	}
	return item, fromLoc, toLoc
}

// businessRules evalúa las reglas habilitadas. Cada regla habilitada aporta su nombre
// a RulesApplied aunque no encuentre nada; las deshabilitadas no se evalúan ni figuran.
// Las reglas que dependen de entidades toleran metadatos ausentes (ya hubo error de existencia).
func (v *Validator) businessRules(rules Rules, p ProposedMovement, item *entity.Item, toLoc *entity.Location, res *Result) {
	now := time.Now()

	if rules.ItemStatus.Enabled {
		res.ruleApplied(RuleItemStatus)
		if item != nil {
			for _, blocked := range rules.ItemStatus.BlockedStatuses {
				if item.Status == blocked {
					res.addError("el artículo tiene estado bloqueado para movimientos: %s", item.Status)
					break
				}
			}
		}
	}

	if rules.MaxConcurrent.Enabled {
		res.ruleApplied(RuleMaxConcurrent)
		count, err := v.historyRepo.CountByItemSince(p.ItemID, now.Add(-rules.MaxConcurrent.Window))
		if err != nil {
			v.log.Error().Err(err).Msg("validador: error contando movimientos recientes")
			res.addError("error interno evaluando movimientos concurrentes")
		} else if count >= rules.MaxConcurrent.Limit {
			res.addError("límite de movimientos concurrentes alcanzado: %d en la última ventana (máximo %d)",
				count, rules.MaxConcurrent.Limit)
		}
	}

	if rules.QuantityConsistency.Enabled {
		res.ruleApplied(RuleQuantityConsistency)
		if !rules.QuantityConsistency.AllowNegative && p.FromLocationID != nil &&
			(p.Type == entity.MovementTypeMove || p.Type == entity.MovementTypeSplit) {
			entry, err := v.entryRepo.Get(p.ItemID, *p.FromLocationID)
			if err != nil {
				v.log.Error().Err(err).Msg("validador: error consultando existencias en origen")
				res.addError("error interno evaluando existencias en origen")
			} else {
				available := int64(0)
				if entry != nil {
					available = entry.Quantity
				}
				if available < p.Quantity {
					res.addError("existencias insuficientes en origen: disponible %d, solicitado %d",
						available, p.Quantity)
				}
			}
		}
	}

	if rules.LocationHierarchy.Enabled {
		res.ruleApplied(RuleLocationHierarchy)
		if toLoc != nil && toLoc.Depth > rules.LocationHierarchy.MaxDepth {
			res.addError("la ubicación destino supera la profundidad máxima permitida (%d > %d)",
				toLoc.Depth, rules.LocationHierarchy.MaxDepth)
		}
	}

	if rules.DuplicatePrevention.Enabled {
		res.ruleApplied(RuleDuplicatePrevention)
		dup, err := v.historyRepo.ExistsDuplicateSince(p.ItemID, p.Type, p.FromLocationID, p.ToLocationID,
			p.Quantity, now.Add(-rules.DuplicatePrevention.Window))
		if err != nil {
			v.log.Error().Err(err).Msg("validador: error buscando movimientos duplicados")
			res.addError("error interno evaluando duplicados")
		} else if dup {
			// Advertencia deliberadamente no bloqueante: evita falsos positivos
			res.addWarning("movimiento idéntico registrado en los últimos %s", rules.DuplicatePrevention.Window)
		}
	}

	if rules.ValueTracking.Enabled {
		res.ruleApplied(RuleValueTracking)
		if item != nil && item.CurrentValue.GreaterThanOrEqual(rules.ValueTracking.Threshold) {
			res.Metadata["high_value_item"] = true
		}
	}
}

// typeChecks verificaciones específicas por tipo de movimiento.
func (v *Validator) typeChecks(p ProposedMovement, item *entity.Item, res *Result) {
	switch p.Type {
	case entity.MovementTypeCreate:
		if item == nil {
			return
		}
		entries, err := v.entryRepo.ListByItem(p.ItemID)
		if err != nil {
			v.log.Error().Err(err).Msg("validador: error consultando inventario del artículo")
			res.addError("error interno consultando inventario del artículo")
			return
		}
		if len(entries) > 0 {
			res.addWarning("el artículo ya tiene inventario en %d ubicación(es); posible duplicado", len(entries))
		}
	case entity.MovementTypeMove:
		// Reverifica que exista la fila origen; la comparación de cantidades
		// corresponde a la regla quantity_consistency.
		if p.FromLocationID == nil {
			return
		}
		entry, err := v.entryRepo.Get(p.ItemID, *p.FromLocationID)
		if err != nil {
			v.log.Error().Err(err).Msg("validador: error reverificando la fila origen")
			res.addError("error interno reverificando la fila origen")
			return
		}
		if entry == nil {
			res.addError("no existe inventario del artículo en la ubicación origen")
		}
	}
}

// performanceGuard advierte ante ráfagas de movimientos del mismo artículo (posible bucle del caller).
func (v *Validator) performanceGuard(p ProposedMovement, res *Result) {
	count, err := v.historyRepo.CountByItemSince(p.ItemID, time.Now().Add(-perfGuardWindow))
	if err != nil {
		v.log.Error().Err(err).Msg("validador: error en la guardia de rendimiento")
		return
	}
	if count > perfGuardLimit {
		res.addWarning("ráfaga de movimientos detectada: %d en el último minuto", count)
	}
}
