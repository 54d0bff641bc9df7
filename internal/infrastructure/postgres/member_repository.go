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

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación del puerto MemberRepository. Siempre sobre el
// shard primario: el Guard consulta memberships sin resolver shard. Pasar pool
// o tx (Querier).
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador de persistencia para memberships.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create persiste una membership. La unicidad por (workspace, usuario) la
// garantiza el constraint único de la tabla.
func (r *MemberRepo) Create(ctx context.Context, m *entity.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (id, workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, m.ID, m.WorkspaceID, m.UserID, m.Role, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// Get obtiene la membership del par (workspace, usuario). Devuelve (nil, nil)
// si el usuario no es miembro.
func (r *MemberRepo) Get(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error) {
	query := `
		SELECT id, workspace_id, user_id, role, created_at
		FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`
	var m entity.WorkspaceMember
	err := r.q.QueryRow(ctx, query, workspaceID, userID).Scan(
		&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// ListByWorkspace lista los miembros del workspace.
func (r *MemberRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.WorkspaceMember, error) {
	query := `
		SELECT id, workspace_id, user_id, role, created_at
		FROM workspace_members WHERE workspace_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkspaceMember
	for rows.Next() {
		var m entity.WorkspaceMember
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByUser lista las memberships de un usuario en todos los workspaces.
func (r *MemberRepo) ListByUser(ctx context.Context, userID string) ([]*entity.WorkspaceMember, error) {
	query := `
		SELECT id, workspace_id, user_id, role, created_at
		FROM workspace_members WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkspaceMember
	for rows.Next() {
		var m entity.WorkspaceMember
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo de miembros para el Quota Ledger.
func (r *MemberRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM workspace_members WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

// Delete elimina la membership del par (workspace, usuario).
func (r *MemberRepo) Delete(ctx context.Context, workspaceID, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
