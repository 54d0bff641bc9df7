package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	pkgjwt "github.com/taskhive/taskhive-api/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro y login local. En el registro se auto-provisiona el
// workspace del usuario; en producción el proveedor de identidad externo emite
// la sesión y este caso de uso solo corre el alta.
type AuthUseCase struct {
	users      repository.UserRepository
	workspaces repository.WorkspaceRepository
	members    repository.MemberRepository
	shards     repository.ShardAssigner
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(
	users repository.UserRepository,
	workspaces repository.WorkspaceRepository,
	members repository.MemberRepository,
	shards repository.ShardAssigner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{users: users, workspaces: workspaces, members: members, shards: shards, jwtCfg: jwtCfg}
}

// Register crea usuario + workspace auto-provisionado + membership owner.
//
// Orden obligatorio: workspace → asignación de shard → owner membership.
// La asignación se escribe ANTES de cualquier entidad dependiente, para que el
// fallback del router al primario nunca enmascare un workspace sin registrar.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	wsName := strings.TrimSpace(in.WorkspaceName)
	if wsName == "" {
		wsName = in.Name + "'s workspace"
	}
	ws := &entity.Workspace{
		ID:            uuid.New().String(),
		Name:          wsName,
		Plan:          plan.Free,
		BillingStatus: plan.StatusActive,
		Currency:      "USD",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.workspaces.Create(ctx, ws); err != nil {
		return nil, err
	}
	if _, err := uc.shards.Assign(ctx, ws.ID); err != nil {
		return nil, fmt.Errorf("register: asignar shard ws=%s: %w", ws.ID, err)
	}
	member := &entity.WorkspaceMember{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		UserID:      user.ID,
		Role:        plan.RoleOwner,
		CreatedAt:   now,
	}
	if err := uc.members.Create(ctx, member); err != nil {
		return nil, err
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("register: emitir token: %w", err)
	}
	return &dto.AuthResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		WorkspaceID: ws.ID,
	}, nil
}

// Login verifica credenciales y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: buscar email: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: emitir token: %w", err)
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}
