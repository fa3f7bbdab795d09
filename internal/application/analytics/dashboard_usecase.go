package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
	"github.com/jhoicas/Inventario-hogar/pkg/cache"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
)

const summaryCacheKey = "dashboard:inventory_summary"

// DashboardUseCase arma el resumen global del inventario para el dashboard.
// Usa cache-aside con TTL corto: el cache es opcional (nil = sin cache) y un
// fallo de Redis nunca tumba la consulta, solo se loguea.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         cache.Client
	ttl           time.Duration
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso; cacheClient puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cacheClient cache.Client, ttl time.Duration, log *logger.Logger) *DashboardUseCase {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cacheClient, ttl: ttl, log: log}
}

// InventorySummary agregados globales: artículos distintos, cantidad total,
// ubicaciones distintas, valor total y desgloses por ubicación y categoría.
func (uc *DashboardUseCase) InventorySummary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, summaryCacheKey); err == nil {
			var cached dto.InventorySummaryDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		} else if err != cache.ErrCacheMiss {
			uc.log.Warn().Err(err).Msg("cache del resumen no disponible; se consulta la BD")
		}
	}

	summary, err := uc.analyticsRepo.InventorySummary()
	if err != nil {
		return nil, err
	}
	result := toSummaryDTO(summary)

	if uc.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := uc.cache.Set(ctx, summaryCacheKey, raw, uc.ttl); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo guardar el resumen en cache")
			}
		}
	}
	return result, nil
}

// InvalidateSummary invalida el resumen cacheado (llamar tras una mutación del libro).
func (uc *DashboardUseCase) InvalidateSummary(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, summaryCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache del resumen")
	}
}

func toSummaryDTO(s *repository.InventorySummary) *dto.InventorySummaryDTO {
	result := &dto.InventorySummaryDTO{
		DistinctItems:     s.DistinctItems,
		TotalQuantity:     s.TotalQuantity,
		DistinctLocations: s.DistinctLocations,
		TotalValue:        s.TotalValue,
		ByLocation:        make([]dto.LocationBreakdownDTO, 0, len(s.ByLocation)),
		ByCategory:        make([]dto.CategoryBreakdownDTO, 0, len(s.ByCategory)),
	}
	for _, b := range s.ByLocation {
		result.ByLocation = append(result.ByLocation, dto.LocationBreakdownDTO{
			LocationID: b.LocationID,
			Name:       b.Name,
			FullPath:   b.FullPath,
			Items:      b.Items,
			Quantity:   b.Quantity,
			Value:      b.Value,
		})
	}
	for _, b := range s.ByCategory {
		result.ByCategory = append(result.ByCategory, dto.CategoryBreakdownDTO{
			CategoryID: b.CategoryID,
			Name:       b.Name,
			Items:      b.Items,
			Quantity:   b.Quantity,
			Value:      b.Value,
		})
	}
	return result
}
