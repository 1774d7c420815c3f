package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdiallo/stockpilot-api/internal/application/auth"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/pkg/jwt"
)

const (
	testWarehouseID = "22222222-2222-2222-2222-222222222222"
	testSecret      = "secreto-de-test-suficientemente-largo"
)

func buildUseCase() (*auth.UseCase, *memUserRepo) {
	users := &memUserRepo{byLogin: make(map[string]*entity.User)}
	uc := auth.NewUseCase(users, &memWarehouseRepo{ids: map[string]bool{testWarehouseID: true}},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "stockpilot-test"})
	return uc, users
}

func TestRegister_ManagerConAlmacen(t *testing.T) {
	uc, users := buildUseCase()

	resp, err := uc.Register(dto.CreateUserRequest{
		Login:       "mgr.lyon",
		Email:       "mgr@ejemplo.com",
		Password:    "password123",
		Name:        "Manager Lyon",
		Role:        entity.RoleManager,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleManager, resp.Role)
	assert.Equal(t, testWarehouseID, resp.WarehouseID)
	assert.True(t, resp.Active)

	stored := users.byLogin["mgr.lyon"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestRegister_ManagerSinAlmacenRechazado(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Register(dto.CreateUserRequest{
		Login: "mgr.sin", Email: "x@ejemplo.com", Password: "password123",
		Name: "Sin Almacén", Role: entity.RoleManager,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un manager necesita almacén asignado")
}

func TestRegister_AdminIgnoraAlmacen(t *testing.T) {
	uc, _ := buildUseCase()

	resp, err := uc.Register(dto.CreateUserRequest{
		Login: "admin", Email: "admin@ejemplo.com", Password: "password123",
		Name: "Admin", Role: entity.RoleAdmin, WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.WarehouseID, "un admin no tiene almacén asignado")
}

func TestRegister_LoginDuplicado(t *testing.T) {
	uc, _ := buildUseCase()
	req := dto.CreateUserRequest{
		Login: "repetido", Email: "a@ejemplo.com", Password: "password123",
		Name: "Uno", Role: entity.RoleAdmin,
	}
	_, err := uc.Register(req)
	require.NoError(t, err)

	_, err = uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrLoginAlreadyExists)
}

func TestLogin_TokenConClaimsDeAlcance(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(dto.CreateUserRequest{
		Login: "mgr.lyon", Email: "mgr@ejemplo.com", Password: "password123",
		Name: "Manager Lyon", Role: entity.RoleManager, WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Login: "mgr.lyon", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, warehouseID, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
	assert.Equal(t, testWarehouseID, warehouseID,
		"el token lleva el almacén asignado para resolver el alcance sin tocar la DB")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(dto.CreateUserRequest{
		Login: "user", Email: "u@ejemplo.com", Password: "password123",
		Name: "User", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Login: "user", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Login(dto.LoginRequest{Login: "fantasma", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users := buildUseCase()
	_, err := uc.Register(dto.CreateUserRequest{
		Login: "baja", Email: "b@ejemplo.com", Password: "password123",
		Name: "Baja", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	users.byLogin["baja"].Active = false

	_, err = uc.Login(dto.LoginRequest{Login: "baja", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ActualizaUltimoAcceso(t *testing.T) {
	uc, users := buildUseCase()
	_, err := uc.Register(dto.CreateUserRequest{
		Login: "user", Email: "u@ejemplo.com", Password: "password123",
		Name: "User", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Login: "user", Password: "password123"})
	require.NoError(t, err)
	assert.NotNil(t, users.byLogin["user"].LastLogin)
}

// ── fakes en memoria ──────────────────────────────────────────────────────────

type memUserRepo struct {
	byLogin map[string]*entity.User
}

func (r *memUserRepo) Create(user *entity.User) error {
	if _, ok := r.byLogin[user.Login]; ok {
		return domain.ErrDuplicate
	}
	r.byLogin[user.Login] = user
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byLogin {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByLogin(login string) (*entity.User, error) {
	u, ok := r.byLogin[login]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	r.byLogin[user.Login] = user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(id string) error {
	for _, u := range r.byLogin {
		if u.ID == id {
			now := time.Now()
			u.LastLogin = &now
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *memUserRepo) List(int, int) ([]*entity.User, error) {
	return nil, errors.New("no implementado")
}
func (r *memUserRepo) Delete(string) error { return errors.New("no implementado") }

type memWarehouseRepo struct {
	ids map[string]bool
}

func (r *memWarehouseRepo) Create(*entity.Warehouse) error { return errors.New("no implementado") }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id}, nil
}
func (r *memWarehouseRepo) Update(*entity.Warehouse) error { return errors.New("no implementado") }
func (r *memWarehouseRepo) List(int, int) ([]*entity.Warehouse, error) {
	return nil, errors.New("no implementado")
}
func (r *memWarehouseRepo) Delete(string) error { return errors.New("no implementado") }
