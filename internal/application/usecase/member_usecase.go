package usecase

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// MemberUseCase listado y baja de miembros del workspace.
type MemberUseCase struct {
	members repository.MemberRepository
	guard   *access.Guard
	bus     *events.Bus
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(members repository.MemberRepository, guard *access.Guard, bus *events.Bus) *MemberUseCase {
	return &MemberUseCase{members: members, guard: guard, bus: bus}
}

// List lista los miembros del workspace.
func (uc *MemberUseCase) List(ctx context.Context, workspaceID string) (*dto.MemberListResponse, error) {
	list, err := uc.members.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := &dto.MemberListResponse{Items: make([]dto.MemberResponse, 0, len(list))}
	for _, m := range list {
		out.Items = append(out.Items, dto.MemberResponse{
			UserID:    m.UserID,
			Role:      string(m.Role),
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// Remove saca a un miembro. Permitido para owner/admin o para el propio
// usuario (self-leave). El owner no puede removerse: primero debe transferir.
func (uc *MemberUseCase) Remove(ctx context.Context, actorID, workspaceID, userID string) error {
	target, err := uc.members.Get(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if target.Role == plan.RoleOwner {
		return domain.ErrConflict
	}

	if actorID != userID {
		isAdmin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return domain.ErrForbidden
		}
	}

	if err := uc.members.Delete(ctx, workspaceID, userID); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "removed",
		EntityKind:  "member",
		EntityID:    target.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		TargetUser:  userID,
	})
	return nil
}
