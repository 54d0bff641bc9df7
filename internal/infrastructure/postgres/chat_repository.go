package postgres

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.ChatRepository = (*ChatRepo)(nil)

// ChatRepo implementación del puerto ChatRepository. Shard-local.
type ChatRepo struct {
	shards *ShardRegistry
}

// NewChatRepository construye el adaptador de persistencia para mensajes.
func NewChatRepository(shards *ShardRegistry) *ChatRepo {
	return &ChatRepo{shards: shards}
}

// Create persiste un mensaje en el shard del workspace.
func (r *ChatRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, workspace_id, team_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.shards.Resolve(ctx, m.WorkspaceID).Pool.Exec(ctx, query,
		m.ID, m.WorkspaceID, m.TeamID, m.UserID, m.Body, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// List devuelve mensajes del canal general (teamID nil) o del team dado, del
// más reciente al más viejo.
func (r *ChatRepo) List(ctx context.Context, workspaceID string, teamID *string, limit, offset int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, workspace_id, team_id, user_id, body, created_at
		FROM chat_messages
		WHERE workspace_id = $1 AND team_id IS NOT DISTINCT FROM $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChatMessage
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.TeamID, &m.UserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *ChatRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chat messages: %w", err)
	}
	return n, nil
}

// Delete elimina un mensaje del workspace.
func (r *ChatRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM chat_messages WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	return nil
}
