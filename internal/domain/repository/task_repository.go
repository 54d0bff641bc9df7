package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia para tareas, subtareas, time logs y
// tags (shard-local, todos en el shard del workspace dueño).
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.Task, error)
	// FindByID localiza una tarea conocida solo por su ID haciendo fan-out
	// sobre todos los shards en orden determinista.
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	ListByProject(ctx context.Context, workspaceID, projectID string, limit, offset int) ([]*entity.Task, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, workspaceID, id string) error

	CreateSubtask(ctx context.Context, s *entity.Subtask) error
	ListSubtasks(ctx context.Context, workspaceID, taskID string) ([]*entity.Subtask, error)
	UpdateSubtask(ctx context.Context, s *entity.Subtask) error

	CreateTimeLog(ctx context.Context, tl *entity.TimeLog) error
	ListTimeLogs(ctx context.Context, workspaceID, taskID string) ([]*entity.TimeLog, error)

	CreateTag(ctx context.Context, tag *entity.Tag) error
	ListTags(ctx context.Context, workspaceID string) ([]*entity.Tag, error)
}
