package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdiallo/stockpilot-api/internal/application/auth"
	"github.com/kdiallo/stockpilot-api/internal/application/forecast"
	"github.com/kdiallo/stockpilot-api/internal/application/sales"
	"github.com/kdiallo/stockpilot-api/internal/application/stock"
	"github.com/kdiallo/stockpilot-api/internal/application/usecase"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *stock.UseCase
	SalesUC     *sales.UseCase
	ForecastUC  *forecast.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (gestión solo admin; el propio perfil es accesible a su dueño)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", RequireRole(entity.RoleAdmin), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)

	// Products (catálogo global; escritura solo admin, validada en el caso de uso)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock-total", productHandler.StockTotal)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Stock por almacén
	stockHandler := NewStockHandler(deps.StockUC)
	warehouses.Get("/:id/stock", stockHandler.List)
	warehouses.Get("/:id/stock/:productId", stockHandler.Get)
	warehouses.Put("/:id/stock/:productId", stockHandler.Upsert)
	warehouses.Post("/:id/stock/:productId/add", stockHandler.Add)
	warehouses.Post("/:id/stock/:productId/remove", stockHandler.Remove)
	warehouses.Put("/:id/stock/:productId/threshold", stockHandler.SetThreshold)

	// Ventas por almacén
	salesHandler := NewSalesHandler(deps.SalesUC)
	warehouses.Post("/:id/sales", salesHandler.Record)
	warehouses.Get("/:id/sales", salesHandler.List)
	warehouses.Get("/:id/sales/top", salesHandler.TopSelling)
	warehouses.Get("/:id/sales/monthly", salesHandler.Monthly)
	warehouses.Get("/:id/sales/weekday", salesHandler.Weekday)

	// Predicciones por almacén
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	warehouses.Post("/:id/forecasts", forecastHandler.Generate)
	warehouses.Get("/:id/forecasts", forecastHandler.List)
	warehouses.Get("/:id/forecasts/high-risk", forecastHandler.ListHighRisk)
	warehouses.Get("/:id/forecasts/:productId/latest", forecastHandler.GetLatest)

	// Predicciones a nivel de red (solo admin, validado en el caso de uso)
	forecasts := protected.Group("/forecasts")
	forecasts.Get("/high-risk", forecastHandler.ListAllHighRisk)
	forecasts.Delete("/", forecastHandler.Purge)
}
