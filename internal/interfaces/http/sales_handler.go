package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/application/sales"
)

// SalesHandler registro y consulta del historial de ventas de un almacén.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar una venta
// @Description  Decrementa el stock y añade la venta al historial en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del almacén"
// @Param        body  body  dto.RecordSaleRequest  true  "product_id, quantity, sale_date (opcional)"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sales [post]
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	sale, err := h.uc.RecordSale(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List godoc
// @Summary      Listar ventas de un almacén
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del almacén"
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        limit       query  int     false  "tamaño de página (def. 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(GetIdentity(c), c.Params("id"), c.Query("product_id"), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// TopSelling godoc
// @Summary      Productos más vendidos de un almacén
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del almacén"
// @Param        since  query  string  false  "fecha inicial 2006-01-02 (def. últimos 30 días)"
// @Param        limit  query  int     false  "máximo de filas (def. 10)"
// @Success      200  {array}   dto.TopSellingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sales/top [get]
func (h *SalesHandler) TopSelling(c *fiber.Ctx) error {
	since := time.Now().UTC().AddDate(0, 0, -30)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "since debe tener formato YYYY-MM-DD"})
		}
		since = parsed
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.uc.TopSelling(GetIdentity(c), c.Params("id"), since, limit)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Ventas agregadas por mes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del almacén"
// @Param        product_id  query  string  true   "ID del producto"
// @Success      200  {array}   dto.MonthlySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sales/monthly [get]
func (h *SalesHandler) Monthly(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.MonthlySales(GetIdentity(c), c.Params("id"), productID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Weekday godoc
// @Summary      Ventas agregadas por día de la semana
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del almacén"
// @Param        product_id  query  string  true   "ID del producto"
// @Success      200  {array}   dto.WeekdaySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sales/weekday [get]
func (h *SalesHandler) Weekday(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.WeekdaySales(GetIdentity(c), c.Params("id"), productID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
