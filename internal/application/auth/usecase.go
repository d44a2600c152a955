package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de owners y personal, login y carga del caller.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterOwner crea un owner (tenant). Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(in.Email, in.Password, in.Name, in.Phone, entity.NewRoleSet(entity.RoleOwner), "")
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, user)
}

// RegisterStaff crea personal subordinado del owner que hace la petición.
// La integridad del superior se verifica al escribir: debe existir y tener rol owner.
func (uc *AuthUseCase) RegisterStaff(ctx context.Context, caller tenancy.Caller, in dto.RegisterStaffRequest) (*dto.UserResponse, error) {
	if !caller.Roles.IsOwner() {
		return nil, domain.ErrForbidden
	}
	roles, err := entity.ParseRoleSet(in.Roles)
	if err != nil || roles.IsEmpty() || roles.IsOwner() {
		return nil, domain.ErrInvalidInput
	}
	superior, err := uc.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if superior == nil || !superior.Roles.IsOwner() {
		return nil, domain.ErrInvalidSuperior
	}
	user, err := uc.newUser(in.Email, in.Password, in.Name, in.Phone, roles, superior.ID)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, user)
}

func (uc *AuthUseCase) newUser(email, password, name, phone string, roles entity.RoleSet, superiorID string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
		SuperiorID:   superiorID,
		Phone:        strings.TrimSpace(phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return user, nil
}

func (uc *AuthUseCase) create(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Roles.Names(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// LoadCaller carga el usuario autenticado y construye el Caller con roles y superior vigentes.
func (uc *AuthUseCase) LoadCaller(ctx context.Context, userID string) (tenancy.Caller, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return tenancy.Caller{}, err
	}
	if user == nil {
		return tenancy.Caller{}, domain.ErrUnauthorized
	}
	return tenancy.CallerFromUser(user), nil
}

// ToUserResponse convierte el usuario a su salida pública (sin credenciales).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     u.Roles.Names(),
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.SuperiorID != "" {
		sid := u.SuperiorID
		resp.SuperiorID = &sid
	}
	return resp
}
