package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación del puerto TeamRepository. Shard-local.
type TeamRepo struct {
	shards *ShardRegistry
}

// NewTeamRepository construye el adaptador de persistencia para teams.
func NewTeamRepository(shards *ShardRegistry) *TeamRepo {
	return &TeamRepo{shards: shards}
}

// Create persiste un team en el shard del workspace.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `
		INSERT INTO teams (id, workspace_id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.shards.Resolve(ctx, t.WorkspaceID).Pool.Exec(ctx, query,
		t.ID, t.WorkspaceID, t.Name, t.Description, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un team del workspace. Devuelve (nil, nil) si no existe.
func (r *TeamRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.Team, error) {
	query := `
		SELECT id, workspace_id, name, description, created_by, created_at, updated_at
		FROM teams WHERE workspace_id = $1 AND id = $2`
	var t entity.Team
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&t.ID, &t.WorkspaceID, &t.Name, &t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	return &t, nil
}

// FindByID localiza un team conocido solo por su ID con el fan-out del router.
// La ausencia en todos los shards devuelve domain.ErrNotFound.
func (r *TeamRepo) FindByID(ctx context.Context, id string) (*entity.Team, error) {
	var found *entity.Team
	query := `
		SELECT id, workspace_id, name, description, created_by, created_at, updated_at
		FROM teams WHERE id = $1`
	_, err := r.shards.FindAcrossShards(ctx, func(ctx context.Context, s *Shard) (bool, error) {
		var t entity.Team
		err := s.Pool.QueryRow(ctx, query, id).Scan(
			&t.ID, &t.WorkspaceID, &t.Name, &t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		found = &t
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByWorkspace lista los teams del workspace.
func (r *TeamRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Team, error) {
	query := `
		SELECT id, workspace_id, name, description, created_by, created_at, updated_at
		FROM teams WHERE workspace_id = $1 ORDER BY created_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Description, &t.CreatedBy,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *TeamRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return n, nil
}

// Delete elimina un team del workspace.
func (r *TeamRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM teams WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// AddMember persiste la pertenencia de un usuario al team.
func (r *TeamRepo) AddMember(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (id, workspace_id, team_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.shards.Resolve(ctx, m.WorkspaceID).Pool.Exec(ctx, query,
		m.ID, m.WorkspaceID, m.TeamID, m.UserID, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// IsMember informa si el usuario pertenece al team.
func (r *TeamRepo) IsMember(ctx context.Context, workspaceID, teamID, userID string) (bool, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE workspace_id = $1 AND team_id = $2 AND user_id = $3`,
		workspaceID, teamID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("is team member: %w", err)
	}
	return n > 0, nil
}

// ListMembers lista los miembros del team.
func (r *TeamRepo) ListMembers(ctx context.Context, workspaceID, teamID string) ([]*entity.TeamMember, error) {
	query := `
		SELECT id, workspace_id, team_id, user_id, created_at
		FROM team_members WHERE workspace_id = $1 AND team_id = $2 ORDER BY created_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()
	var list []*entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.TeamID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// RemoveMember saca al usuario del team.
func (r *TeamRepo) RemoveMember(ctx context.Context, workspaceID, teamID, userID string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM team_members WHERE workspace_id = $1 AND team_id = $2 AND user_id = $3`,
		workspaceID, teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	return nil
}
