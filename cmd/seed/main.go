// seed puebla la base de datos con datos de demostración: un admin, dos
// almacenes con su manager, un catálogo pequeño y ~90 días de historial de
// ventas para alimentar el motor de previsión.
//
// Uso: go run ./cmd/seed
// Requiere la misma configuración de entorno que la API (DB_*, FIELD_ENCRYPTION_KEY).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/infrastructure/postgres"
	"github.com/kdiallo/stockpilot-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	cipher, err := postgres.NewFieldCipher(cfg.Crypto.FieldKey)
	if err != nil {
		fail("clave de cifrado de campos: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool, cipher)
	stockRepo := postgres.NewStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)

	// Almacenes
	warehouses := []*entity.Warehouse{
		{ID: uuid.NewString(), Name: "Almacén Central", Address: "Av. Industrial 120", City: "Madrid", Capacity: 5000},
		{ID: uuid.NewString(), Name: "Almacén Norte", Address: "Polígono Ría 8", City: "Bilbao", Capacity: 2000},
	}
	for _, w := range warehouses {
		if err := warehouseRepo.Create(w); err != nil {
			fail("crear almacén %s: %v", w.Name, err)
		}
		fmt.Printf("almacén %s (%s)\n", w.Name, w.ID)
	}

	// Usuarios: un admin global y un manager por almacén
	if err := userRepo.Create(demoUser("admin", "admin@stockpilot.test", "Administrador", entity.RoleAdmin, "")); err != nil {
		fail("crear admin: %v", err)
	}
	for i, w := range warehouses {
		login := fmt.Sprintf("manager%d", i+1)
		if err := userRepo.Create(demoUser(login, login+"@stockpilot.test", "Manager "+w.City, entity.RoleManager, w.ID)); err != nil {
			fail("crear %s: %v", login, err)
		}
	}
	fmt.Println("usuarios creados (password: demo1234)")

	// Catálogo
	products := []*entity.Product{
		demoProduct("Café en grano 1kg", "Alimentación", "24.90", "14.50", entity.UnitKg),
		demoProduct("Aceite de oliva 5L", "Alimentación", "49.00", "31.00", entity.UnitLiter),
		demoProduct("Detergente industrial 10L", "Limpieza", "32.50", "18.75", entity.UnitLiter),
		demoProduct("Caja embalaje 60x40", "Logística", "1.85", "0.92", entity.UnitPiece),
		demoProduct("Film paletizar 300m", "Logística", "12.40", "6.10", entity.UnitPiece),
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			fail("crear producto %s: %v", p.Name, err)
		}
	}
	fmt.Printf("%d productos creados\n", len(products))

	// Stock inicial + 90 días de ventas con demanda distinta por producto,
	// para que las previsiones muestren los cuatro niveles de riesgo.
	rng := rand.New(rand.NewSource(42))
	today := time.Now().UTC().Truncate(24 * time.Hour)
	totalSales := 0
	for _, w := range warehouses {
		for i, p := range products {
			baseDemand := i + 1 // unidades/día aproximadas
			stockQty := baseDemand * (10 + rng.Intn(40))
			entry := &entity.StockEntry{
				ProductID:         p.ID,
				WarehouseID:       w.ID,
				QuantityAvailable: stockQty,
				AlertThreshold:    baseDemand * 7,
			}
			if err := stockRepo.Upsert(entry); err != nil {
				fail("stock inicial %s/%s: %v", p.Name, w.Name, err)
			}
			for day := 90; day >= 1; day-- {
				qty := rng.Intn(baseDemand*2 + 1)
				if qty == 0 {
					continue
				}
				record := &entity.SaleRecord{
					ID:           uuid.NewString(),
					ProductID:    p.ID,
					WarehouseID:  w.ID,
					SaleDate:     today.AddDate(0, 0, -day),
					QuantitySold: qty,
				}
				record.ComputeDateFields()
				if err := saleRepo.Create(record); err != nil {
					fail("venta %s/%s: %v", p.Name, w.Name, err)
				}
				totalSales++
			}
		}
	}
	fmt.Printf("%d ventas históricas creadas\n", totalSales)
	fmt.Println("seed completado")
}

func demoUser(login, email, name, role, warehouseID string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}
	return &entity.User{
		ID:           uuid.NewString(),
		Login:        login,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		WarehouseID:  warehouseID,
		Active:       true,
	}
}

func demoProduct(name, category, salePrice, purchasePrice, unit string) *entity.Product {
	sale := decimal.RequireFromString(salePrice)
	purchase := decimal.RequireFromString(purchasePrice)
	margin := sale.Sub(purchase)
	return &entity.Product{
		ID:            uuid.NewString(),
		Name:          name,
		Category:      category,
		SalePrice:     sale,
		PurchasePrice: &purchase,
		Margin:        &margin,
		Unit:          unit,
		Active:        true,
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
