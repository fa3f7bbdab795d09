package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hogar/internal/application/analytics"
	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/application/inventory"
	"github.com/jhoicas/Inventario-hogar/internal/application/validation"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
)

// InventoryHandler maneja las mutaciones y consultas del libro de inventario.
// Toda mutación pasa primero por el validador: un resultado inválido corta con 400
// antes de tocar el libro. Tras una mutación exitosa se invalida el cache del dashboard.
type InventoryHandler struct {
	svc       *inventory.Service
	validator *validation.Validator
	dashboard *analytics.DashboardUseCase
	pdfGen    LocationReportPDFGenerator
}

// LocationReportPDFGenerator genera el PDF imprimible de un reporte de ubicación.
type LocationReportPDFGenerator interface {
	GenerateLocationReport(ctx context.Context, report *dto.LocationReportDTO) ([]byte, error)
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	svc *inventory.Service,
	validator *validation.Validator,
	dashboard *analytics.DashboardUseCase,
	pdfGen LocationReportPDFGenerator,
) *InventoryHandler {
	return &InventoryHandler{svc: svc, validator: validator, dashboard: dashboard, pdfGen: pdfGen}
}

// preValidate corre el validador sobre el movimiento propuesto. Si el resultado es
// inválido responde 400 con el detalle y devuelve false.
func (h *InventoryHandler) preValidate(c *fiber.Ctx, p validation.ProposedMovement) bool {
	res := h.validator.ValidateMovement(p, false)
	if !res.IsValid {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":    "el movimiento no pasó la validación",
			"validation": res,
		})
		return false
	}
	return true
}

func ptrStr(s string) *string { return &s }

// CreateEntry godoc
// @Summary      Alta inicial de un artículo en una ubicación
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "item_id, location_id, quantity"
// @Success      201   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !h.preValidate(c, validation.ProposedMovement{
		ItemID:       in.ItemID,
		Type:         entity.MovementTypeCreate,
		ToLocationID: ptrStr(in.LocationID),
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		Actor:        in.Actor,
	}) {
		return nil
	}
	entry, err := h.svc.CreateEntry(c.Context(), in.ItemID, in.LocationID, in.Quantity, in.Reason, in.Actor)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// Move godoc
// @Summary      Trasladar unidades entre ubicaciones
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveRequest  true  "item_id, from_location_id, to_location_id, quantity"
// @Success      200   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/move [post]
func (h *InventoryHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !h.preValidate(c, validation.ProposedMovement{
		ItemID:         in.ItemID,
		Type:           entity.MovementTypeMove,
		FromLocationID: ptrStr(in.FromLocationID),
		ToLocationID:   ptrStr(in.ToLocationID),
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Actor:          in.Actor,
	}) {
		return nil
	}
	entry, err := h.svc.Move(c.Context(), in.ItemID, in.FromLocationID, in.ToLocationID, in.Quantity, in.Reason, in.Actor)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	return c.JSON(toEntryResponse(entry))
}

// Split godoc
// @Summary      Dividir unidades hacia otra ubicación
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SplitRequest  true  "item_id, source_location_id, dest_location_id, quantity_to_move"
// @Success      200   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/split [post]
func (h *InventoryHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !h.preValidate(c, validation.ProposedMovement{
		ItemID:         in.ItemID,
		Type:           entity.MovementTypeSplit,
		FromLocationID: ptrStr(in.SourceLocationID),
		ToLocationID:   ptrStr(in.DestLocationID),
		Quantity:       in.QuantityToMove,
		Reason:         in.Reason,
		Actor:          in.Actor,
	}) {
		return nil
	}
	entry, err := h.svc.Split(c.Context(), in.ItemID, in.SourceLocationID, in.DestLocationID, in.QuantityToMove, in.Reason, in.Actor)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	return c.JSON(toEntryResponse(entry))
}

// Merge godoc
// @Summary      Consolidar un artículo desde varias ubicaciones en una
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MergeRequest  true  "item_id, location_ids, target_location_id"
// @Success      200   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/merge [post]
func (h *InventoryHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// Merge se valida como lote: un movimiento propuesto por cada ubicación origen.
	movements := make([]validation.ProposedMovement, 0, len(in.LocationIDs))
	for _, locID := range in.LocationIDs {
		movements = append(movements, validation.ProposedMovement{
			ItemID:         in.ItemID,
			Type:           entity.MovementTypeMerge,
			FromLocationID: ptrStr(locID),
			ToLocationID:   ptrStr(in.TargetLocationID),
			Reason:         in.Reason,
			Actor:          in.Actor,
		})
	}
	if overall, _ := h.validator.ValidateBulk(movements, true); !overall.IsValid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":    "el merge no pasó la validación",
			"validation": overall,
		})
	}
	entry, err := h.svc.Merge(c.Context(), in.ItemID, in.LocationIDs, in.TargetLocationID, in.Reason, in.Actor)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	return c.JSON(toEntryResponse(entry))
}

// Adjust godoc
// @Summary      Fijar la cantidad tras un recuento físico
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "item_id, location_id, new_quantity"
// @Success      200   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !h.preValidate(c, validation.ProposedMovement{
		ItemID:       in.ItemID,
		Type:         entity.MovementTypeAdjust,
		ToLocationID: ptrStr(in.LocationID),
		Reason:       in.Reason,
		Actor:        in.Actor,
	}) {
		return nil
	}
	entry, err := h.svc.Adjust(c.Context(), in.ItemID, in.LocationID, in.NewQuantity, in.Reason, in.Actor)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	if entry == nil {
		// El recuento dejó la fila en cero: ya no hay entrada que devolver
		return c.JSON(fiber.Map{"message": "recuento aplicado; la fila quedó eliminada"})
	}
	return c.JSON(toEntryResponse(entry))
}

// DeleteEntry godoc
// @Summary      Baja total de un artículo en una ubicación
// @Tags         inventory
// @Produce      json
// @Param        item_id      path  string  true  "ID del artículo"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/entries/{item_id}/{location_id} [delete]
func (h *InventoryHandler) DeleteEntry(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	locationID := c.Params("location_id")
	reason := c.Query("reason")
	actor := c.Query("actor")
	if err := h.svc.DeleteEntry(c.Context(), itemID, locationID, reason, actor); err != nil {
		return mapDomainError(c, err)
	}
	h.dashboard.InvalidateSummary(c.Context())
	return c.JSON(fiber.Map{"message": "entrada eliminada"})
}

// ItemLocations godoc
// @Summary      Ubicaciones con existencias de un artículo
// @Tags         inventory
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {array}   dto.ItemLocationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/locations [get]
func (h *InventoryHandler) ItemLocations(c *fiber.Ctx) error {
	locations, err := h.svc.LocationsForItem(c.Params("item_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(locations)
}

// LocationItems godoc
// @Summary      Artículos presentes en una ubicación, valorizados
// @Tags         inventory
// @Produce      json
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.LocationItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{location_id}/items [get]
func (h *InventoryHandler) LocationItems(c *fiber.Ctx) error {
	items, err := h.svc.ItemsInLocation(c.Params("location_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(items)
}

// LocationReport godoc
// @Summary      Reporte agregado de una ubicación
// @Description  Con ?format=pdf devuelve el reporte imprimible en PDF.
// @Tags         inventory
// @Produce      json
// @Param        location_id  path   string  true   "ID de la ubicación"
// @Param        format       query  string  false  "json (default) o pdf"
// @Success      200  {object}  dto.LocationReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{location_id}/report [get]
func (h *InventoryHandler) LocationReport(c *fiber.Ctx) error {
	report, err := h.svc.LocationReport(c.Params("location_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if c.Query("format") == "pdf" {
		bytes, err := h.pdfGen.GenerateLocationReport(c.Context(), report)
		if err != nil {
			return mapDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ubicacion.pdf"`)
		return c.Send(bytes)
	}
	return c.JSON(report)
}

func toEntryResponse(e *entity.InventoryEntry) dto.InventoryEntryResponse {
	return dto.InventoryEntryResponse{
		ItemID:     e.ItemID,
		LocationID: e.LocationID,
		Quantity:   e.Quantity,
		UpdatedAt:  e.UpdatedAt,
	}
}
