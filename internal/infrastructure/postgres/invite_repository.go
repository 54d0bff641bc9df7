package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación del puerto InviteRepository sobre el shard
// primario. Pasar pool o tx (Querier).
type InviteRepo struct {
	q Querier
}

// NewInviteRepository construye el adaptador de persistencia para invitaciones.
func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

// Create persiste una invitación.
func (r *InviteRepo) Create(ctx context.Context, inv *entity.Invite) error {
	query := `
		INSERT INTO invites (id, workspace_id, team_id, email, token, role, status, invited_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.WorkspaceID, inv.TeamID, inv.Email, inv.Token, inv.Role, inv.Status,
		inv.InvitedBy, inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por token. Devuelve (nil, nil) si no existe.
func (r *InviteRepo) GetByToken(ctx context.Context, token string) (*entity.Invite, error) {
	return r.get(ctx, `token = $1`, token)
}

// GetByID obtiene una invitación por ID. Devuelve (nil, nil) si no existe.
func (r *InviteRepo) GetByID(ctx context.Context, id string) (*entity.Invite, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *InviteRepo) get(ctx context.Context, where string, arg any) (*entity.Invite, error) {
	query := `
		SELECT id, workspace_id, team_id, email, token, role, status, invited_by, expires_at, created_at
		FROM invites WHERE ` + where
	var inv entity.Invite
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.WorkspaceID, &inv.TeamID, &inv.Email, &inv.Token, &inv.Role, &inv.Status,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return &inv, nil
}

// ListByWorkspace lista las invitaciones del workspace.
func (r *InviteRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Invite, error) {
	query := `
		SELECT id, workspace_id, team_id, email, token, role, status, invited_by, expires_at, created_at
		FROM invites WHERE workspace_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invite
	for rows.Next() {
		var inv entity.Invite
		if err := rows.Scan(&inv.ID, &inv.WorkspaceID, &inv.TeamID, &inv.Email, &inv.Token, &inv.Role,
			&inv.Status, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// CountPending cuenta invitaciones pendientes y no vencidas a `now` (el
// vencimiento se computa contra expires_at, nunca se almacena).
func (r *InviteRepo) CountPending(ctx context.Context, workspaceID string, now time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invites WHERE workspace_id = $1 AND status = 'pending' AND expires_at > $2`,
		workspaceID, now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending invites: %w", err)
	}
	return n, nil
}

// UpdateStatus cambia el estado persistido de una invitación.
func (r *InviteRepo) UpdateStatus(ctx context.Context, id string, status entity.InviteStatus) error {
	_, err := r.q.Exec(ctx, `UPDATE invites SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invite status: %w", err)
	}
	return nil
}
