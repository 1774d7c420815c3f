package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/application/stock"
)

// StockHandler operaciones del libro mayor de stock de un almacén.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar stock de un almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del almacén"
// @Param        filter  query  string  false  "alert | critical | out (vacío = todo)"
// @Param        limit   query  int     false  "tamaño de página (def. 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListByWarehouse(GetIdentity(c), c.Params("id"), c.Query("filter"), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener la entrada de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del almacén"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{productId} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetIdentity(c), c.Params("id"), c.Params("productId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Fijar el stock de un producto (corrección de inventario)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID del almacén"
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.UpsertStockRequest  true  "quantity, alert_threshold (opcional)"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{productId} [put]
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Upsert(c.Context(), GetIdentity(c), c.Params("id"), c.Params("productId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Añadir stock (entrada de mercancía)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID del almacén"
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "quantity > 0"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{productId}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.Context(), GetIdentity(c), c.Params("id"), c.Params("productId"), in.Quantity)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Retirar stock (salida manual)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID del almacén"
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "quantity > 0"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{productId}/remove [post]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Remove(c.Context(), GetIdentity(c), c.Params("id"), c.Params("productId"), in.Quantity)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SetThreshold godoc
// @Summary      Actualizar el umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                   true  "ID del almacén"
// @Param        productId  path  string                   true  "ID del producto"
// @Param        body       body  dto.SetThresholdRequest  true  "alert_threshold >= 0"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{productId}/threshold [put]
func (h *StockHandler) SetThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetAlertThreshold(c.Context(), GetIdentity(c), c.Params("id"), c.Params("productId"), in.AlertThreshold)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
