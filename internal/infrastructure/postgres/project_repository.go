package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository. Shard-local: cada
// método resuelve el shard dueño del workspace vía el registro antes de tocar
// la base.
type ProjectRepo struct {
	shards *ShardRegistry
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(shards *ShardRegistry) *ProjectRepo {
	return &ProjectRepo{shards: shards}
}

// Create persiste un proyecto en el shard del workspace.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, workspace_id, name, description, color, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.shards.Resolve(ctx, p.WorkspaceID).Pool.Exec(ctx, query,
		p.ID, p.WorkspaceID, p.Name, p.Description, p.Color, p.Status, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto del workspace. Devuelve (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.Project, error) {
	query := `
		SELECT id, workspace_id, name, description, color, status, created_by, created_at, updated_at
		FROM projects WHERE workspace_id = $1 AND id = $2`
	var p entity.Project
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Color, &p.Status, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &p, nil
}

// List lista los proyectos del workspace con paginación.
func (r *ProjectRepo) List(ctx context.Context, workspaceID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT id, workspace_id, name, description, color, status, created_by, created_at, updated_at
		FROM projects WHERE workspace_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Color, &p.Status,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger, nunca cacheado.
func (r *ProjectRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// Update actualiza un proyecto.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $3, description = $4, color = $5, status = $6, updated_at = $7
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, p.WorkspaceID).Pool.Exec(ctx, query,
		p.WorkspaceID, p.ID, p.Name, p.Description, p.Color, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete elimina un proyecto del workspace.
func (r *ProjectRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM projects WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
