package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo implementación del puerto CommentRepository. Shard-local.
type CommentRepo struct {
	shards *ShardRegistry
}

// NewCommentRepository construye el adaptador de persistencia para comentarios.
func NewCommentRepository(shards *ShardRegistry) *CommentRepo {
	return &CommentRepo{shards: shards}
}

// Create persiste un comentario en el shard de su tarea.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comments (id, workspace_id, task_id, user_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.shards.Resolve(ctx, c.WorkspaceID).Pool.Exec(ctx, query,
		c.ID, c.WorkspaceID, c.TaskID, c.UserID, c.Body, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByTask lista los comentarios de una tarea.
func (r *CommentRepo) ListByTask(ctx context.Context, workspaceID, taskID string) ([]*entity.Comment, error) {
	query := `
		SELECT id, workspace_id, task_id, user_id, body, created_at, updated_at
		FROM comments WHERE workspace_id = $1 AND task_id = $2 ORDER BY created_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.TaskID, &c.UserID, &c.Body,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// FindByID localiza un comentario conocido solo por su ID: fan-out ascendente
// sobre todos los shards, primer hit gana. El comentario trae su WorkspaceID,
// con el que el caller resuelve el mismo shard para operar después.
func (r *CommentRepo) FindByID(ctx context.Context, id string) (*entity.Comment, error) {
	var found *entity.Comment
	query := `
		SELECT id, workspace_id, task_id, user_id, body, created_at, updated_at
		FROM comments WHERE id = $1`
	_, err := r.shards.FindAcrossShards(ctx, func(ctx context.Context, s *Shard) (bool, error) {
		var c entity.Comment
		err := s.Pool.QueryRow(ctx, query, id).Scan(
			&c.ID, &c.WorkspaceID, &c.TaskID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		found = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Update actualiza el cuerpo de un comentario.
func (r *CommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	query := `
		UPDATE comments SET body = $3, updated_at = $4
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, c.WorkspaceID).Pool.Exec(ctx, query, c.WorkspaceID, c.ID, c.Body, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete elimina un comentario del workspace.
func (r *CommentRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM comments WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
