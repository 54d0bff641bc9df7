package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ChatRepository puerto de persistencia para mensajes de chat (shard-local).
type ChatRepository interface {
	Create(ctx context.Context, m *entity.ChatMessage) error
	// List devuelve mensajes del canal general (teamID nil) o de un team.
	List(ctx context.Context, workspaceID string, teamID *string, limit, offset int) ([]*entity.ChatMessage, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Delete(ctx context.Context, workspaceID, id string) error
}
