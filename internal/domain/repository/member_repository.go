package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// MemberRepository puerto de persistencia para WorkspaceMember.
// Siempre sobre el shard primario (los memberships no se shardean: el Guard
// debe poder consultarlos sin resolver antes el shard del workspace).
type MemberRepository interface {
	Create(ctx context.Context, m *entity.WorkspaceMember) error
	// Get devuelve (nil, nil) si el par (workspace, usuario) no existe.
	Get(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.WorkspaceMember, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.WorkspaceMember, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Delete(ctx context.Context, workspaceID, userID string) error
}
