package history

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

// Service expone el libro de auditoría: registro append-only y consultas derivadas.
// Aquí no se valida nada; eso ya ocurrió (o el caller decidió saltárselo).
type Service struct {
	historyRepo  repository.MovementHistoryRepository
	locationRepo repository.LocationRepository
}

// NewService construye el servicio de historial.
func NewService(historyRepo repository.MovementHistoryRepository, locationRepo repository.LocationRepository) *Service {
	return &Service{historyRepo: historyRepo, locationRepo: locationRepo}
}

// Record escribe una fila inmutable del historial. El único valor calculado
// es la descripción legible, que se deriva al momento de la lectura.
func (s *Service) Record(rec *entity.MovementHistoryRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return s.historyRepo.Create(rec)
}

// List devuelve el historial filtrado, con descripciones legibles.
func (s *Service) List(f repository.HistoryFilter) ([]dto.MovementRecordDTO, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	records, err := s.historyRepo.List(f)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(records)
}

// ItemTimeline devuelve la línea de tiempo cronológica de movimientos de un artículo.
func (s *Service) ItemTimeline(itemID string) ([]dto.MovementRecordDTO, error) {
	records, err := s.historyRepo.ListByItem(itemID, 500, 0)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(records)
}

// Summary agrega el historial por tipo de movimiento con porcentajes, en un rango opcional.
func (s *Service) Summary(from, to *time.Time) (*dto.MovementSummaryDTO, error) {
	counts, err := s.historyRepo.CountByType("", from, to)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	summary := &dto.MovementSummaryDTO{Total: total, From: from, To: to}
	for _, movementType := range entity.MovementTypes {
		count, ok := counts[movementType]
		if !ok {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = float64(count) * 100 / float64(total)
		}
		summary.ByType = append(summary.ByType, dto.MovementTypeSummaryDTO{
			Type:       movementType,
			Count:      count,
			Percentage: pct,
		})
	}
	return summary, nil
}

// LocationPairStats estadísticas de movimientos por par (origen, destino).
func (s *Service) LocationPairStats(from, to *time.Time) ([]dto.LocationPairStatDTO, error) {
	stats, err := s.historyRepo.LocationPairStats(from, to)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(stats)*2)
	for _, st := range stats {
		ids = append(ids, st.FromLocationID, st.ToLocationID)
	}
	names, err := s.locationRepo.NamesByIDs(ids)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LocationPairStatDTO, 0, len(stats))
	for _, st := range stats {
		result = append(result, dto.LocationPairStatDTO{
			FromLocationID: st.FromLocationID,
			FromName:       names[st.FromLocationID],
			ToLocationID:   st.ToLocationID,
			ToName:         names[st.ToLocationID],
			Movements:      st.Movements,
			TotalQuantity:  st.TotalQuantity,
		})
	}
	return result, nil
}

// toDTOs resuelve nombres de ubicación y arma las descripciones legibles.
func (s *Service) toDTOs(records []*entity.MovementHistoryRecord) ([]dto.MovementRecordDTO, error) {
	var ids []string
	for _, rec := range records {
		if rec.FromLocationID != nil {
			ids = append(ids, *rec.FromLocationID)
		}
		if rec.ToLocationID != nil {
			ids = append(ids, *rec.ToLocationID)
		}
	}
	names, err := s.locationRepo.NamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MovementRecordDTO, 0, len(records))
	for _, rec := range records {
		result = append(result, dto.MovementRecordDTO{
			ID:                 rec.ID,
			ItemID:             rec.ItemID,
			Type:               rec.Type,
			FromLocationID:     rec.FromLocationID,
			ToLocationID:       rec.ToLocationID,
			QuantityMoved:      rec.QuantityMoved,
			QuantityBeforeFrom: rec.QuantityBeforeFrom,
			QuantityAfterFrom:  rec.QuantityAfterFrom,
			QuantityBeforeTo:   rec.QuantityBeforeTo,
			QuantityAfterTo:    rec.QuantityAfterTo,
			Reason:             rec.Reason,
			Actor:              rec.Actor,
			Description:        Describe(rec, names),
			CreatedAt:          rec.CreatedAt,
		})
	}
	return result, nil
}

// Describe arma la descripción legible de un movimiento a partir del tipo y los
// nombres de ubicación vigentes al momento de la lectura.
func Describe(rec *entity.MovementHistoryRecord, names map[string]string) string {
	name := func(id *string) string {
		if id == nil {
			return "?"
		}
		if n, ok := names[*id]; ok && n != "" {
			return n
		}
		return *id
	}
	switch rec.Type {
	case entity.MovementTypeCreate:
		return fmt.Sprintf("Alta de %d unidad(es) en %s", rec.QuantityMoved, name(rec.ToLocationID))
	case entity.MovementTypeMove:
		return fmt.Sprintf("Movidas %d unidad(es) de %s a %s", rec.QuantityMoved, name(rec.FromLocationID), name(rec.ToLocationID))
	case entity.MovementTypeSplit:
		return fmt.Sprintf("Divididas %d unidad(es) de %s hacia %s", rec.QuantityMoved, name(rec.FromLocationID), name(rec.ToLocationID))
	case entity.MovementTypeMerge:
		return fmt.Sprintf("Consolidadas %d unidad(es) de %s en %s", rec.QuantityMoved, name(rec.FromLocationID), name(rec.ToLocationID))
	case entity.MovementTypeAdjust:
		before, after := int64(0), int64(0)
		if rec.QuantityBeforeTo != nil {
			before = *rec.QuantityBeforeTo
		}
		if rec.QuantityAfterTo != nil {
			after = *rec.QuantityAfterTo
		}
		return fmt.Sprintf("Recuento en %s: %d → %d", name(rec.ToLocationID), before, after)
	case entity.MovementTypeRemove:
		return fmt.Sprintf("Baja de %d unidad(es) en %s", rec.QuantityMoved, name(rec.FromLocationID))
	}
	return fmt.Sprintf("Movimiento %s de %d unidad(es)", rec.Type, rec.QuantityMoved)
}
