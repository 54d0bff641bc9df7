package usecase

import (
	"context"
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

// TeamUseCase teams del workspace y sus miembros.
type TeamUseCase struct {
	teams  repository.TeamRepository
	guard  *access.Guard
	ledger *quota.Ledger
	bus    *events.Bus
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(
	teams repository.TeamRepository,
	guard *access.Guard,
	ledger *quota.Ledger,
	bus *events.Bus,
) *TeamUseCase {
	return &TeamUseCase{teams: teams, guard: guard, ledger: ledger, bus: bus}
}

// Create crea un team. Solo owner o admin.
func (uc *TeamUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryTeams)
	defer unlock()

	used, err := uc.teams.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryTeams, used); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &entity.Team{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.teams.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "created",
		EntityKind:  "team",
		EntityID:    t.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Name,
	})
	return teamToResponse(t), nil
}

// List lista los teams del workspace.
func (uc *TeamUseCase) List(ctx context.Context, workspaceID string) (*dto.TeamListResponse, error) {
	list, err := uc.teams.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := &dto.TeamListResponse{Items: make([]dto.TeamResponse, 0, len(list))}
	for _, t := range list {
		out.Items = append(out.Items, *teamToResponse(t))
	}
	return out, nil
}

// AddMember agrega un usuario al team. El usuario debe ser ya miembro del
// workspace: un team nunca amplía el perímetro del tenant.
func (uc *TeamUseCase) AddMember(ctx context.Context, actorID, workspaceID, teamID string, in dto.AddTeamMemberRequest) error {
	if in.UserID == "" {
		return domain.ErrInvalidInput
	}
	admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	t, err := uc.teams.GetByID(ctx, workspaceID, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	isMember, err := uc.guard.VerifyAccess(ctx, in.UserID, workspaceID)
	if err != nil {
		return err
	}
	if !isMember {
		return domain.ErrInvalidInput
	}
	already, err := uc.teams.IsMember(ctx, workspaceID, teamID, in.UserID)
	if err != nil {
		return err
	}
	if already {
		return domain.ErrDuplicate
	}
	tm := &entity.TeamMember{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TeamID:      teamID,
		UserID:      in.UserID,
		CreatedAt:   time.Now(),
	}
	if err := uc.teams.AddMember(ctx, tm); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "joined",
		EntityKind:  "team",
		EntityID:    teamID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		TargetUser:  in.UserID,
		Detail:      t.Name,
	})
	return nil
}

// RemoveMember saca un usuario del team.
func (uc *TeamUseCase) RemoveMember(ctx context.Context, actorID, workspaceID, teamID, userID string) error {
	if actorID != userID {
		admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
		if err != nil {
			return err
		}
		if !admin {
			return domain.ErrForbidden
		}
	}
	return uc.teams.RemoveMember(ctx, workspaceID, teamID, userID)
}

// Delete elimina un team. Solo owner o admin.
func (uc *TeamUseCase) Delete(ctx context.Context, actorID, workspaceID, teamID string) error {
	admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	t, err := uc.teams.GetByID(ctx, workspaceID, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if err := uc.teams.Delete(ctx, workspaceID, teamID); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "deleted",
		EntityKind:  "team",
		EntityID:    teamID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Name,
	})
	return nil
}

func teamToResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
