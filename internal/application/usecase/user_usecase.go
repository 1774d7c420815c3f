package usecase

import (
	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/auth"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin). El alta vive en el caso
// de uso de auth porque implica hashear el password.
type UserUseCase struct {
	repo          repository.UserRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, warehouseRepo repository.WarehouseRepository) *UserUseCase {
	return &UserUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// GetByID obtiene un usuario. Admin puede ver cualquiera; un usuario siempre
// puede verse a sí mismo.
func (uc *UserUseCase) GetByID(caller access.Identity, id string) (*dto.UserResponse, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update actualiza un usuario. Solo admin. Si el cambio convierte al usuario en
// manager (o le cambia el almacén), el almacén debe existir; pasar a admin
// limpia la asignación.
func (uc *UserUseCase) Update(caller access.Identity, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.WarehouseID != nil {
		user.WarehouseID = *in.WarehouseID
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	switch user.Role {
	case entity.RoleAdmin:
		user.WarehouseID = ""
	case entity.RoleManager:
		if user.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		warehouse, err := uc.warehouseRepo.GetByID(user.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista los usuarios con paginación. Solo admin.
func (uc *UserUseCase) List(caller access.Identity, page dto.PageRequest) (*dto.UserListResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un usuario. Solo admin; un admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(caller access.Identity, id string) error {
	if !caller.IsAdmin() {
		return &domain.AccessDeniedError{UserID: caller.UserID}
	}
	if caller.UserID == id {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(id)
}
