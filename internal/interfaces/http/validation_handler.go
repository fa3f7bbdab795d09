package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/application/validation"
)

// ValidationHandler expone el motor de validación como servicio de consulta.
// Las violaciones de negocio NO son errores HTTP: la respuesta siempre es 200 con
// el veredicto dentro; los 4xx/5xx quedan para cuerpos malformados y fallos reales.
type ValidationHandler struct {
	validator *validation.Validator
}

// NewValidationHandler construye el handler.
func NewValidationHandler(validator *validation.Validator) *ValidationHandler {
	return &ValidationHandler{validator: validator}
}

// ValidateMovement godoc
// @Summary      Validar un movimiento propuesto sin aplicarlo
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateMovementRequest  true  "movimiento propuesto y enforce_strict opcional"
// @Success      200   {object}  validation.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/validation/movement [post]
func (h *ValidationHandler) ValidateMovement(c *fiber.Ctx) error {
	var in dto.ValidateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res := h.validator.ValidateMovement(validation.FromDTO(in.Movement), in.Strict)
	return c.JSON(res)
}

// ValidateBulk godoc
// @Summary      Validar un lote de movimientos con detección de conflictos cruzados
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateBulkRequest  true  "lote de movimientos y flag atomic"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/validation/bulk [post]
func (h *ValidationHandler) ValidateBulk(c *fiber.Ctx) error {
	var in dto.ValidateBulkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movements := make([]validation.ProposedMovement, 0, len(in.Movements))
	for _, m := range in.Movements {
		movements = append(movements, validation.FromDTO(m))
	}
	overall, individual := h.validator.ValidateBulk(movements, in.Atomic)
	return c.JSON(fiber.Map{
		"overall":    overall,
		"individual": individual,
	})
}

// GetRules godoc
// @Summary      Snapshot vigente de las reglas de negocio
// @Tags         validation
// @Produce      json
// @Success      200  {object}  validation.Rules
// @Router       /api/validation/rules [get]
func (h *ValidationHandler) GetRules(c *fiber.Ctx) error {
	return c.JSON(h.validator.Rules())
}

// UpdateRules godoc
// @Summary      Aplicar overrides parciales de reglas en caliente
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]dto.RuleOverride  true  "overrides por nombre de regla"
// @Success      200   {object}  validation.Rules
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/validation/rules [put]
func (h *ValidationHandler) UpdateRules(c *fiber.Ctx) error {
	var overrides map[string]dto.RuleOverride
	if err := c.BodyParser(&overrides); err != nil {
		return badBody(c)
	}
	return c.JSON(h.validator.ApplyOverrides(overrides))
}

// Report godoc
// @Summary      Reporte del motor: reglas, conteos por tipo y salud
// @Tags         validation
// @Produce      json
// @Param        item_id  query  string  false  "Limitar conteos a un artículo"
// @Success      200  {object}  dto.ValidationReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/validation/report [get]
func (h *ValidationHandler) Report(c *fiber.Ctx) error {
	report, err := h.validator.Report(c.Query("item_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}
