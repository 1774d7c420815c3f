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

// WarehouseUseCase casos de uso CRUD para almacenes. Crear, modificar y borrar
// es cosa de admin; consultar uno concreto exige acceso a ese almacén.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea un almacén. Solo admin.
func (uc *WarehouseUseCase) Create(caller access.Identity, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén; un manager solo puede ver el suyo.
func (uc *WarehouseUseCase) GetByID(caller access.Identity, id string) (*dto.WarehouseResponse, error) {
	if err := access.Authorize(caller, id); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén. Solo admin.
func (uc *WarehouseUseCase) Update(caller access.Identity, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.City != nil {
		warehouse.City = *in.City
	}
	if in.Capacity != nil {
		warehouse.Capacity = *in.Capacity
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista los almacenes. Solo admin: un manager no necesita ver el resto de
// la red.
func (uc *WarehouseUseCase) List(caller access.Identity, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un almacén. Solo admin.
func (uc *WarehouseUseCase) Delete(caller access.Identity, id string) error {
	if !caller.IsAdmin() {
		return &domain.AccessDeniedError{UserID: caller.UserID}
	}
	return uc.repo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		City:      w.City,
		Capacity:  w.Capacity,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
