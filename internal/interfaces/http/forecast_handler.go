package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/application/forecast"
)

// ForecastHandler generación y consulta de predicciones de reaprovisionamiento.
type ForecastHandler struct {
	uc *forecast.UseCase
}

// NewForecastHandler construye el handler de predicciones.
func NewForecastHandler(uc *forecast.UseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar predicciones
// @Description  Con product_id genera la predicción de ese producto; sin él, la de todos los productos con stock registrado en el almacén.
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del almacén"
// @Param        product_id  query  string  false  "limitar a un producto"
// @Success      201  {object}  dto.PredictionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/forecasts [post]
func (h *ForecastHandler) Generate(c *fiber.Ctx) error {
	caller := GetIdentity(c)
	warehouseID := c.Params("id")
	if productID := c.Query("product_id"); productID != "" {
		out, err := h.uc.Generate(c.Context(), caller, warehouseID, productID)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	out, err := h.uc.GenerateForWarehouse(c.Context(), caller, warehouseID)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLatest godoc
// @Summary      Última predicción de un producto
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del almacén"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.PredictionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/forecasts/{productId}/latest [get]
func (h *ForecastHandler) GetLatest(c *fiber.Ctx) error {
	out, err := h.uc.GetLatest(GetIdentity(c), c.Params("id"), c.Params("productId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar predicciones de un almacén
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del almacén"
// @Param        limit   query  int     false  "tamaño de página (def. 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PredictionListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/forecasts [get]
func (h *ForecastHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListByWarehouse(GetIdentity(c), c.Params("id"), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListHighRisk godoc
// @Summary      Predicciones de riesgo ELEVE o CRITIQUE de un almacén
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del almacén"
// @Success      200  {object}  dto.PredictionListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/forecasts/high-risk [get]
func (h *ForecastHandler) ListHighRisk(c *fiber.Ctx) error {
	out, err := h.uc.ListHighRisk(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListAllHighRisk godoc
// @Summary      Predicciones de alto riesgo en toda la red
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PredictionListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/forecasts/high-risk [get]
func (h *ForecastHandler) ListAllHighRisk(c *fiber.Ctx) error {
	out, err := h.uc.ListAllHighRisk(GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Purge godoc
// @Summary      Purgar predicciones antiguas
// @Description  Elimina las predicciones anteriores a hoy menos days días.
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  true  "antigüedad mínima en días (> 0)"
// @Success      200  {object}  dto.PurgeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/forecasts [delete]
func (h *ForecastHandler) Purge(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days debe ser un entero positivo"})
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := h.uc.PurgeOlderThan(GetIdentity(c), cutoff)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.PurgeResponse{Deleted: deleted})
}
