package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// inviteTTL vida útil de una invitación.
const inviteTTL = 7 * 24 * time.Hour

// MembershipTxRunner ejecuta la aceptación de una invitación (alta de la
// membership + marca de aceptada) en una transacción del shard primario: o
// quedan las dos filas o ninguna.
type MembershipTxRunner interface {
	Run(ctx context.Context, fn func(members repository.MemberRepository, invites repository.InviteRepository) error) error
}

// InviteUseCase invitaciones a workspace/team: creación (admin), aceptación
// por token, revocación y listado. La categoría members cubre miembros más
// invitaciones pendientes, así que la cuota se verifica acá.
type InviteUseCase struct {
	invites repository.InviteRepository
	members repository.MemberRepository
	teams   repository.TeamRepository
	guard   *access.Guard
	ledger  *quota.Ledger
	bus     *events.Bus
	tx      MembershipTxRunner
}

// NewInviteUseCase construye el caso de uso.
func NewInviteUseCase(
	invites repository.InviteRepository,
	members repository.MemberRepository,
	teams repository.TeamRepository,
	guard *access.Guard,
	ledger *quota.Ledger,
	bus *events.Bus,
	tx MembershipTxRunner,
) *InviteUseCase {
	return &InviteUseCase{invites: invites, members: members, teams: teams, guard: guard, ledger: ledger, bus: bus, tx: tx}
}

// Create emite una invitación. Solo owner/admin. Cuota: members cuenta
// memberships + invitaciones pendientes, bajo el lock de la categoría.
func (uc *InviteUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	isAdmin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := plan.Role(in.Role)
	if email == "" || !role.Valid() || role == plan.RoleOwner {
		return nil, domain.ErrInvalidInput
	}
	if in.TeamID != nil {
		team, err := uc.teams.GetByID(ctx, workspaceID, *in.TeamID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, domain.ErrNotFound
		}
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryMembers)
	defer unlock()

	now := time.Now()
	used, err := uc.currentMembersUsage(ctx, workspaceID, now)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryMembers, used); err != nil {
		return nil, err
	}

	inv := &entity.Invite{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TeamID:      in.TeamID,
		Email:       email,
		Token:       uuid.New().String(),
		Role:        role,
		Status:      entity.InvitePending,
		InvitedBy:   actorID,
		ExpiresAt:   now.Add(inviteTTL),
		CreatedAt:   now,
	}
	if err := uc.invites.Create(ctx, inv); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "invited",
		EntityKind:  "member",
		EntityID:    inv.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      email,
	})
	out := inviteToResponse(inv, now)
	out.Token = inv.Token // visible solo en la creación
	return out, nil
}

// Accept canjea un token. Valida estado y vencimiento (computado contra
// ExpiresAt, nunca almacenado) y crea la membership; si la invitación estaba
// limitada a un team, agrega también la pertenencia al team.
func (uc *InviteUseCase) Accept(ctx context.Context, userID string, in dto.AcceptInviteRequest) (*dto.MemberResponse, error) {
	inv, err := uc.invites.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	switch {
	case inv.Status == entity.InviteRevoked:
		return nil, domain.ErrInviteRevoked
	case inv.Status == entity.InviteAccepted:
		return nil, domain.ErrInviteUsed
	case inv.Expired(now):
		return nil, domain.ErrInviteExpired
	}

	existing, err := uc.members.Get(ctx, inv.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate // a lo sumo una membership por (workspace, usuario)
	}

	member := &entity.WorkspaceMember{
		ID:          uuid.New().String(),
		WorkspaceID: inv.WorkspaceID,
		UserID:      userID,
		Role:        inv.Role,
		CreatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(members repository.MemberRepository, invites repository.InviteRepository) error {
		if err := members.Create(ctx, member); err != nil {
			return err
		}
		return invites.UpdateStatus(ctx, inv.ID, entity.InviteAccepted)
	})
	if err != nil {
		return nil, fmt.Errorf("accept invite: %w", err)
	}
	// La pertenencia al team vive en el shard del workspace: no puede entrar
	// en la transacción del primario (las tx cross-shard están prohibidas).
	if inv.TeamID != nil {
		tm := &entity.TeamMember{
			ID:          uuid.New().String(),
			WorkspaceID: inv.WorkspaceID,
			TeamID:      *inv.TeamID,
			UserID:      userID,
			CreatedAt:   now,
		}
		if err := uc.teams.AddMember(ctx, tm); err != nil {
			return nil, err
		}
	}

	uc.bus.Publish(events.Event{
		Action:      "joined",
		EntityKind:  "member",
		EntityID:    member.ID,
		WorkspaceID: inv.WorkspaceID,
		ActorID:     userID,
		TargetUser:  inv.InvitedBy,
		Detail:      inv.Email + " se unió al workspace",
	})
	return &dto.MemberResponse{UserID: userID, Role: string(member.Role), CreatedAt: now}, nil
}

// Revoke revoca una invitación pendiente. Solo owner/admin.
func (uc *InviteUseCase) Revoke(ctx context.Context, actorID, workspaceID, inviteID string) error {
	isAdmin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domain.ErrForbidden
	}
	inv, err := uc.invites.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv == nil || inv.WorkspaceID != workspaceID {
		return domain.ErrNotFound
	}
	if inv.Status != entity.InvitePending {
		return domain.ErrConflict
	}
	return uc.invites.UpdateStatus(ctx, inviteID, entity.InviteRevoked)
}

// List lista las invitaciones del workspace con estado computado.
func (uc *InviteUseCase) List(ctx context.Context, workspaceID string) (*dto.InviteListResponse, error) {
	list, err := uc.invites.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := &dto.InviteListResponse{Items: make([]dto.InviteResponse, 0, len(list))}
	for _, inv := range list {
		out.Items = append(out.Items, *inviteToResponse(inv, now))
	}
	return out, nil
}

func (uc *InviteUseCase) currentMembersUsage(ctx context.Context, workspaceID string, now time.Time) (int, error) {
	members, err := uc.members.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, err
	}
	pending, err := uc.invites.CountPending(ctx, workspaceID, now)
	if err != nil {
		return 0, err
	}
	return members + pending, nil
}

func inviteToResponse(inv *entity.Invite, now time.Time) *dto.InviteResponse {
	status := string(inv.Status)
	if inv.Status == entity.InvitePending && inv.Expired(now) {
		status = "expired"
	}
	return &dto.InviteResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		TeamID:    inv.TeamID,
		Status:    status,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}
