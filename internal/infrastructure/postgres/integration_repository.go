package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.IntegrationRepository = (*IntegrationRepo)(nil)

// IntegrationRepo implementación del puerto IntegrationRepository. Shard-local.
type IntegrationRepo struct {
	shards *ShardRegistry
}

// NewIntegrationRepository construye el adaptador de persistencia para integraciones.
func NewIntegrationRepository(shards *ShardRegistry) *IntegrationRepo {
	return &IntegrationRepo{shards: shards}
}

// Create persiste una integración en el shard del workspace.
func (r *IntegrationRepo) Create(ctx context.Context, i *entity.Integration) error {
	query := `
		INSERT INTO integrations (id, workspace_id, kind, name, target_url, enabled, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.shards.Resolve(ctx, i.WorkspaceID).Pool.Exec(ctx, query,
		i.ID, i.WorkspaceID, i.Kind, i.Name, i.TargetURL, i.Enabled, i.CreatedBy, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert integration: %w", err)
	}
	return nil
}

// GetByID obtiene una integración del workspace. Devuelve (nil, nil) si no existe.
func (r *IntegrationRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.Integration, error) {
	query := `
		SELECT id, workspace_id, kind, name, target_url, enabled, created_by, created_at, updated_at
		FROM integrations WHERE workspace_id = $1 AND id = $2`
	var i entity.Integration
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&i.ID, &i.WorkspaceID, &i.Kind, &i.Name, &i.TargetURL, &i.Enabled, &i.CreatedBy,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get integration: %w", err)
	}
	return &i, nil
}

// ListByWorkspace lista las integraciones del workspace.
func (r *IntegrationRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Integration, error) {
	query := `
		SELECT id, workspace_id, kind, name, target_url, enabled, created_by, created_at, updated_at
		FROM integrations WHERE workspace_id = $1 ORDER BY created_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Integration
	for rows.Next() {
		var i entity.Integration
		if err := rows.Scan(&i.ID, &i.WorkspaceID, &i.Kind, &i.Name, &i.TargetURL, &i.Enabled,
			&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *IntegrationRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM integrations WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count integrations: %w", err)
	}
	return n, nil
}

// Update actualiza una integración.
func (r *IntegrationRepo) Update(ctx context.Context, i *entity.Integration) error {
	query := `
		UPDATE integrations SET name = $3, target_url = $4, enabled = $5, updated_at = $6
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, i.WorkspaceID).Pool.Exec(ctx, query,
		i.WorkspaceID, i.ID, i.Name, i.TargetURL, i.Enabled, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update integration: %w", err)
	}
	return nil
}

// Delete elimina una integración del workspace.
func (r *IntegrationRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM integrations WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	return nil
}
