package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// TeamRepository puerto de persistencia para teams y sus miembros (shard-local).
type TeamRepository interface {
	Create(ctx context.Context, t *entity.Team) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.Team, error)
	// FindByID localiza un team conocido solo por su ID (fan-out); lo usa el
	// Guard para verificar pertenencia a un team sin conocer el workspace.
	FindByID(ctx context.Context, id string) (*entity.Team, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Team, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Delete(ctx context.Context, workspaceID, id string) error

	AddMember(ctx context.Context, m *entity.TeamMember) error
	IsMember(ctx context.Context, workspaceID, teamID, userID string) (bool, error)
	ListMembers(ctx context.Context, workspaceID, teamID string) ([]*entity.TeamMember, error)
	RemoveMember(ctx context.Context, workspaceID, teamID, userID string) error
}
