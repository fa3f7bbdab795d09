package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hogar/internal/application/history"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

// HistoryHandler expone el libro de auditoría de movimientos (solo lectura por HTTP).
type HistoryHandler struct {
	svc *history.Service
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// parseTimeQuery interpreta un parámetro de fecha RFC 3339; nil si está ausente o es inválido.
func parseTimeQuery(c *fiber.Ctx, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// List godoc
// @Summary      Historial de movimientos con filtros
// @Tags         history
// @Produce      json
// @Param        item_id      query  string  false  "Filtrar por artículo"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        type         query  string  false  "Filtrar por tipo de movimiento"
// @Param        from         query  string  false  "Desde (RFC 3339)"
// @Param        to           query  string  false  "Hasta (RFC 3339)"
// @Param        limit        query  int     false  "Límite (default 50)"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {array}   dto.MovementRecordDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	filter := repository.HistoryFilter{
		ItemID:     c.Query("item_id"),
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
		From:       parseTimeQuery(c, "from"),
		To:         parseTimeQuery(c, "to"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}
	records, err := h.svc.List(filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(records)
}

// ItemTimeline godoc
// @Summary      Línea de tiempo de movimientos de un artículo
// @Tags         history
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {array}   dto.MovementRecordDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/history/items/{item_id} [get]
func (h *HistoryHandler) ItemTimeline(c *fiber.Ctx) error {
	records, err := h.svc.ItemTimeline(c.Params("item_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(records)
}

// Summary godoc
// @Summary      Resumen del historial por tipo de movimiento
// @Tags         history
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC 3339)"
// @Param        to    query  string  false  "Hasta (RFC 3339)"
// @Success      200  {object}  dto.MovementSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/history/summary [get]
func (h *HistoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.svc.Summary(parseTimeQuery(c, "from"), parseTimeQuery(c, "to"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(summary)
}

// LocationPairStats godoc
// @Summary      Estadísticas de movimientos por par origen/destino
// @Tags         history
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC 3339)"
// @Param        to    query  string  false  "Hasta (RFC 3339)"
// @Success      200  {array}   dto.LocationPairStatDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/history/location-pairs [get]
func (h *HistoryHandler) LocationPairStats(c *fiber.Ctx) error {
	stats, err := h.svc.LocationPairStats(parseTimeQuery(c, "from"), parseTimeQuery(c, "to"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(stats)
}
