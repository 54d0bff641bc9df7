package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// CommentRepository puerto de persistencia para comentarios (shard-local).
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	ListByTask(ctx context.Context, workspaceID, taskID string) ([]*entity.Comment, error)
	// FindByID localiza un comentario conocido solo por su ID: fan-out sobre
	// todos los shards en orden ascendente, primer hit gana. El comentario
	// devuelto trae su WorkspaceID, con el que cualquier operación posterior
	// (borrado, autorización) resuelve el mismo shard.
	FindByID(ctx context.Context, id string) (*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, workspaceID, id string) error
}
