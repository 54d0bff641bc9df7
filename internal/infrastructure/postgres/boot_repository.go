package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.BootRepository = (*BootRepo)(nil)

// BootRepo implementación del puerto BootRepository. Shard-local: el log de
// consultas al asistente vive en el shard del workspace que las hizo.
type BootRepo struct {
	shards *ShardRegistry
}

// NewBootRepository construye el adaptador de persistencia para el log de boots.
func NewBootRepository(shards *ShardRegistry) *BootRepo {
	return &BootRepo{shards: shards}
}

// Create persiste una consulta al asistente.
func (r *BootRepo) Create(ctx context.Context, b *entity.BootRequest) error {
	query := `
		INSERT INTO boot_requests (id, workspace_id, user_id, prompt, tokens_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.shards.Resolve(ctx, b.WorkspaceID).Pool.Exec(ctx, query,
		b.ID, b.WorkspaceID, b.UserID, b.Prompt, b.TokensUsed, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert boot request: %w", err)
	}
	return nil
}

// CountSince cuenta las consultas del workspace desde `since` (inicio del
// período de cobro actual). Conteo vivo, nunca un contador acumulado.
func (r *BootRepo) CountSince(ctx context.Context, workspaceID string, since time.Time) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM boot_requests WHERE workspace_id = $1 AND created_at >= $2`,
		workspaceID, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count boot requests: %w", err)
	}
	return n, nil
}

// ListRecent lista las últimas consultas del workspace.
func (r *BootRepo) ListRecent(ctx context.Context, workspaceID string, limit int) ([]*entity.BootRequest, error) {
	query := `
		SELECT id, workspace_id, user_id, prompt, tokens_used, created_at
		FROM boot_requests WHERE workspace_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list boot requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.BootRequest
	for rows.Next() {
		var b entity.BootRequest
		if err := rows.Scan(&b.ID, &b.WorkspaceID, &b.UserID, &b.Prompt, &b.TokensUsed, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan boot request: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
