package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kdiallo/stockpilot-api/internal/application/auth"
	"github.com/kdiallo/stockpilot-api/internal/application/forecast"
	"github.com/kdiallo/stockpilot-api/internal/application/ports"
	"github.com/kdiallo/stockpilot-api/internal/application/sales"
	"github.com/kdiallo/stockpilot-api/internal/application/stock"
	"github.com/kdiallo/stockpilot-api/internal/application/usecase"
	infraai "github.com/kdiallo/stockpilot-api/internal/infrastructure/ai"
	"github.com/kdiallo/stockpilot-api/internal/infrastructure/postgres"
	httpRouter "github.com/kdiallo/stockpilot-api/internal/interfaces/http"
	"github.com/kdiallo/stockpilot-api/pkg/config"
	"github.com/kdiallo/stockpilot-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	cipher, err := postgres.NewFieldCipher(cfg.Crypto.FieldKey)
	if err != nil {
		log.Fatal().Err(err).Msg("clave de cifrado de campos")
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool, cipher)
	stockRepo := postgres.NewStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	predictionRepo := postgres.NewPredictionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	stockUC := stock.NewUseCase(txRunner, stockRepo, productRepo, warehouseRepo)
	salesUC := sales.NewUseCase(txRunner, saleRepo)

	// Proveedor generativo opcional: sin API key el motor trabaja solo con el
	// generador por reglas.
	var recommender ports.Recommender
	if cfg.AI.AnthropicAPIKey != "" {
		recommender = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		log.Info().Str("model", cfg.AI.AnthropicModel).Msg("recomendaciones generativas activadas")
	}
	forecastUC := forecast.NewUseCase(
		stockRepo, saleRepo, predictionRepo, productRepo, warehouseRepo,
		recommender, time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockPilot API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		StockUC:     stockUC,
		SalesUC:     salesUC,
		ForecastUC:  forecastUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
