package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia para proyectos (shard-local).
// Todos los métodos reciben el workspaceID: la implementación resuelve el shard
// dueño vía el Shard Registry antes de tocar la base.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.Project, error)
	List(ctx context.Context, workspaceID string, limit, offset int) ([]*entity.Project, error)
	// CountByWorkspace conteo vivo para el Quota Ledger; nunca cacheado.
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, workspaceID, id string) error
}
