package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.BoardRepository = (*BoardRepo)(nil)

// BoardRepo implementación del puerto BoardRepository. Shard-local.
type BoardRepo struct {
	shards *ShardRegistry
}

// NewBoardRepository construye el adaptador de persistencia para boards.
func NewBoardRepository(shards *ShardRegistry) *BoardRepo {
	return &BoardRepo{shards: shards}
}

// Create persiste un board en el shard del workspace.
func (r *BoardRepo) Create(ctx context.Context, b *entity.Board) error {
	query := `
		INSERT INTO boards (id, workspace_id, project_id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.shards.Resolve(ctx, b.WorkspaceID).Pool.Exec(ctx, query,
		b.ID, b.WorkspaceID, b.ProjectID, b.Name, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

// GetByID obtiene un board del workspace. Devuelve (nil, nil) si no existe.
func (r *BoardRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.Board, error) {
	query := `
		SELECT id, workspace_id, project_id, name, created_by, created_at, updated_at
		FROM boards WHERE workspace_id = $1 AND id = $2`
	var b entity.Board
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&b.ID, &b.WorkspaceID, &b.ProjectID, &b.Name, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get board by id: %w", err)
	}
	return &b, nil
}

// ListByProject lista los boards de un proyecto.
func (r *BoardRepo) ListByProject(ctx context.Context, workspaceID, projectID string) ([]*entity.Board, error) {
	query := `
		SELECT id, workspace_id, project_id, name, created_by, created_at, updated_at
		FROM boards WHERE workspace_id = $1 AND project_id = $2 ORDER BY created_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()
	var list []*entity.Board
	for rows.Next() {
		var b entity.Board
		if err := rows.Scan(&b.ID, &b.WorkspaceID, &b.ProjectID, &b.Name, &b.CreatedBy,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *BoardRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM boards WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count boards: %w", err)
	}
	return n, nil
}

// Update actualiza un board.
func (r *BoardRepo) Update(ctx context.Context, b *entity.Board) error {
	query := `
		UPDATE boards SET name = $3, updated_at = $4
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, b.WorkspaceID).Pool.Exec(ctx, query, b.WorkspaceID, b.ID, b.Name, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	return nil
}

// Delete elimina un board del workspace.
func (r *BoardRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM boards WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// CreateColumn persiste una columna en el shard de su board.
func (r *BoardRepo) CreateColumn(ctx context.Context, c *entity.BoardColumn) error {
	query := `
		INSERT INTO board_columns (id, workspace_id, board_id, name, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.shards.Resolve(ctx, c.WorkspaceID).Pool.Exec(ctx, query,
		c.ID, c.WorkspaceID, c.BoardID, c.Name, c.Position, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert board column: %w", err)
	}
	return nil
}

// ListColumns lista las columnas de un board ordenadas por posición.
func (r *BoardRepo) ListColumns(ctx context.Context, workspaceID, boardID string) ([]*entity.BoardColumn, error) {
	query := `
		SELECT id, workspace_id, board_id, name, position, created_at
		FROM board_columns WHERE workspace_id = $1 AND board_id = $2 ORDER BY position`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, boardID)
	if err != nil {
		return nil, fmt.Errorf("list board columns: %w", err)
	}
	defer rows.Close()
	var list []*entity.BoardColumn
	for rows.Next() {
		var c entity.BoardColumn
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.BoardID, &c.Name, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan board column: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// FindColumnByID localiza una columna conocida solo por su ID con el fan-out
// del router; la columna devuelta trae el workspace y el board dueños.
func (r *BoardRepo) FindColumnByID(ctx context.Context, id string) (*entity.BoardColumn, error) {
	var found *entity.BoardColumn
	query := `
		SELECT id, workspace_id, board_id, name, position, created_at
		FROM board_columns WHERE id = $1`
	_, err := r.shards.FindAcrossShards(ctx, func(ctx context.Context, s *Shard) (bool, error) {
		var c entity.BoardColumn
		err := s.Pool.QueryRow(ctx, query, id).Scan(
			&c.ID, &c.WorkspaceID, &c.BoardID, &c.Name, &c.Position, &c.CreatedAt,
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

// DeleteColumn elimina una columna del board.
func (r *BoardRepo) DeleteColumn(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM board_columns WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete board column: %w", err)
	}
	return nil
}
