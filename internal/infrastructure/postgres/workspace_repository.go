package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.WorkspaceRepository = (*WorkspaceRepo)(nil)

// WorkspaceRepo implementación del puerto WorkspaceRepository sobre el shard
// primario. Pasar pool o tx (Querier).
type WorkspaceRepo struct {
	q Querier
}

// NewWorkspaceRepository construye el adaptador de persistencia para workspaces.
func NewWorkspaceRepository(q Querier) *WorkspaceRepo {
	return &WorkspaceRepo{q: q}
}

// Create persiste un workspace nuevo.
func (r *WorkspaceRepo) Create(ctx context.Context, ws *entity.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, plan, billing_interval, billing_status, billing_provider,
			currency, next_billing_at, last_payment_amount, last_payment_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		ws.ID, ws.Name, ws.Plan, ws.BillingInterval, ws.BillingStatus, ws.BillingProvider,
		ws.Currency, ws.NextBillingAt, ws.LastPaymentAmount, ws.LastPaymentAt,
		ws.CreatedAt, ws.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// GetByID obtiene un workspace por ID. Devuelve (nil, nil) si no existe.
func (r *WorkspaceRepo) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	query := `
		SELECT id, name, plan, billing_interval, billing_status, billing_provider,
			currency, next_billing_at, last_payment_amount, last_payment_at, created_at, updated_at
		FROM workspaces WHERE id = $1`
	var ws entity.Workspace
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.Plan, &ws.BillingInterval, &ws.BillingStatus, &ws.BillingProvider,
		&ws.Currency, &ws.NextBillingAt, &ws.LastPaymentAmount, &ws.LastPaymentAt,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}
	return &ws, nil
}

// UpdateName actualiza el nombre del workspace.
func (r *WorkspaceRepo) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE workspaces SET name = $2, updated_at = $3 WHERE id = $1`,
		id, name, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update workspace name: %w", err)
	}
	return nil
}

// UpdateBilling sobrescribe el registro de billing completo del workspace
// (last-write-wins con clave workspace). Solo lo llama el reconciler.
func (r *WorkspaceRepo) UpdateBilling(ctx context.Context, id string, rec entity.BillingRecord) error {
	query := `
		UPDATE workspaces SET plan = $2, billing_interval = $3, billing_status = $4,
			billing_provider = $5, currency = $6, next_billing_at = $7,
			last_payment_amount = $8, last_payment_at = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		id, rec.Plan, rec.BillingInterval, rec.BillingStatus, rec.BillingProvider,
		rec.Currency, rec.NextBillingAt, rec.LastPaymentAmount, rec.LastPaymentAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update workspace billing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un workspace por ID.
func (r *WorkspaceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
