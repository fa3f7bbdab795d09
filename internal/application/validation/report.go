package validation

import (
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
)

// Report devuelve el snapshot vigente de reglas, los conteos por tipo de movimiento
// (globales o del artículo indicado) y un indicador simple de salud.
func (v *Validator) Report(itemID string) (*dto.ValidationReportDTO, error) {
	counts, err := v.historyRepo.CountByType(itemID, nil, nil)
	if err != nil {
		return nil, err
	}
	last24h, err := v.historyRepo.CountSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}

	rules := v.registry.Snapshot()
	return &dto.ValidationReportDTO{
		Rules:              rules,
		MovementTypeCounts: counts,
		Health: dto.ValidationHealthDTO{
			MovementsLast24h: last24h,
			ActiveRules:      rules.ActiveCount(),
		},
		GeneratedAt: time.Now(),
	}, nil
}
