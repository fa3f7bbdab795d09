package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hogar/internal/application/analytics"
)

// DashboardHandler expone los agregados del inventario para el dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen global del inventario (cacheado)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.InventorySummary(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(summary)
}
