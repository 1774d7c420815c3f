package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
	"github.com/kdiallo/stockpilot-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
	jwtCfg        JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, warehouseRepo repository.WarehouseRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, warehouseRepo: warehouseRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: valida rol y almacén asignado, hashea el password
// con bcrypt y persiste. Un manager necesita almacén; un admin no lleva ninguno.
func (uc *UseCase) Register(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByLogin(in.Login)
	if existing != nil {
		return nil, domain.ErrLoginAlreadyExists
	}

	switch in.Role {
	case entity.RoleAdmin:
		in.WarehouseID = ""
	case entity.RoleManager:
		if in.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		WarehouseID:  in.WarehouseID,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// Login verifica login/password, actualiza el último acceso y genera el JWT
// con rol y almacén asignado.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByLogin(in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := uc.userRepo.UpdateLastLogin(user.ID); err != nil {
		// El login no se bloquea por no poder registrar la marca de tiempo.
		log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar last_login")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.WarehouseID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su DTO de salida (sin hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Login:       u.Login,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		WarehouseID: u.WarehouseID,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}
