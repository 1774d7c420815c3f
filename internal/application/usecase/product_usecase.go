package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de productos. El catálogo
// es global (no por almacén); crear, modificar y borrar es cosa de admin, pero
// cualquier usuario autenticado puede consultarlo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo. Solo admin.
func (uc *ProductUseCase) Create(caller access.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	if in.Unit == "" {
		in.Unit = entity.UnitPiece
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		Margin:        in.Margin,
		Weight:        in.Weight,
		Unit:          in.Unit,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, true), nil
}

// GetByID obtiene un producto por ID. Los campos sensibles (precio de compra,
// margen) solo se exponen a admin.
func (uc *ProductUseCase) GetByID(caller access.Identity, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product, caller.IsAdmin()), nil
}

// Update actualiza un producto. Solo admin.
func (uc *ProductUseCase) Update(caller access.Identity, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = in.PurchasePrice
	}
	if in.Margin != nil {
		product.Margin = in.Margin
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, true), nil
}

// List lista el catálogo con paginación.
func (uc *ProductUseCase) List(caller access.Identity, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, caller.IsAdmin()))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto por ID. Solo admin.
func (uc *ProductUseCase) Delete(caller access.Identity, id string) error {
	if !caller.IsAdmin() {
		return &domain.AccessDeniedError{UserID: caller.UserID}
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product, includeSensitive bool) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		SalePrice:   p.SalePrice,
		Weight:      p.Weight,
		Unit:        p.Unit,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if includeSensitive {
		resp.PurchasePrice = p.PurchasePrice
		resp.Margin = p.Margin
	}
	return resp
}
