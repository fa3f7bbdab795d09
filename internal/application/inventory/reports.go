package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Consultas de solo lectura sobre el libro de inventario. No tocan el historial
// ni abren transacciones: leen con los repos atados al pool.

// LocationsForItem devuelve todas las ubicaciones donde hay existencias del artículo.
func (s *Service) LocationsForItem(itemID string) ([]dto.ItemLocationDTO, error) {
	if _, err := s.lookupItem(itemID); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ItemLocationDTO, 0, len(entries))
	for _, e := range entries {
		row := dto.ItemLocationDTO{
			LocationID: e.LocationID,
			Quantity:   e.Quantity,
			UpdatedAt:  e.UpdatedAt,
		}
		if loc, err := s.locationRepo.GetByID(e.LocationID); err == nil && loc != nil {
			row.LocationName = loc.Name
			row.FullPath = loc.FullPath
		}
		result = append(result, row)
	}
	return result, nil
}

// ItemsInLocation devuelve los artículos presentes en una ubicación, valorizados.
func (s *Service) ItemsInLocation(locationID string) ([]dto.LocationItemDTO, error) {
	if _, err := s.lookupLocation(locationID); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	return s.valuateEntries(entries)
}

// LocationReport agrega número de artículos, cantidad total y valor total
// (suma de item.CurrentValue * cantidad) de una ubicación.
func (s *Service) LocationReport(locationID string) (*dto.LocationReportDTO, error) {
	loc, err := s.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := s.entryRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	items, err := s.valuateEntries(entries)
	if err != nil {
		return nil, err
	}

	report := &dto.LocationReportDTO{
		LocationID:  loc.ID,
		Name:        loc.Name,
		FullPath:    loc.FullPath,
		ItemCount:   len(items),
		TotalValue:  decimal.Zero,
		Items:       items,
		GeneratedAt: time.Now(),
	}
	for _, it := range items {
		report.TotalQuantity += it.Quantity
		report.TotalValue = report.TotalValue.Add(it.TotalValue)
	}
	return report, nil
}

// valuateEntries resuelve nombre, estado y valor de los artículos de un conjunto de filas.
func (s *Service) valuateEntries(entries []*entity.InventoryEntry) ([]dto.LocationItemDTO, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ItemID)
	}
	items, err := s.itemRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	result := make([]dto.LocationItemDTO, 0, len(entries))
	for _, e := range entries {
		row := dto.LocationItemDTO{
			ItemID:     e.ItemID,
			Quantity:   e.Quantity,
			UnitValue:  decimal.Zero,
			TotalValue: decimal.Zero,
			UpdatedAt:  e.UpdatedAt,
		}
		if it, ok := byID[e.ItemID]; ok {
			row.ItemName = it.Name
			row.Status = it.Status
			row.UnitValue = it.CurrentValue
			row.TotalValue = it.CurrentValue.Mul(decimal.NewFromInt(e.Quantity))
		}
		result = append(result, row)
	}
	return result, nil
}
