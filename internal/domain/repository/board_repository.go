package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// BoardRepository puerto de persistencia para boards y columnas (shard-local).
type BoardRepository interface {
	Create(ctx context.Context, b *entity.Board) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.Board, error)
	ListByProject(ctx context.Context, workspaceID, projectID string) ([]*entity.Board, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Update(ctx context.Context, b *entity.Board) error
	Delete(ctx context.Context, workspaceID, id string) error

	CreateColumn(ctx context.Context, c *entity.BoardColumn) error
	ListColumns(ctx context.Context, workspaceID, boardID string) ([]*entity.BoardColumn, error)
	// FindColumnByID localiza una columna conocida solo por su ID (fan-out),
	// p.ej. para autorizar el board dueño antes de mover tareas.
	FindColumnByID(ctx context.Context, id string) (*entity.BoardColumn, error)
	DeleteColumn(ctx context.Context, workspaceID, id string) error
}
