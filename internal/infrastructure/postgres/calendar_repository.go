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

var _ repository.CalendarRepository = (*CalendarRepo)(nil)

// CalendarRepo implementación del puerto CalendarRepository. Shard-local.
type CalendarRepo struct {
	shards *ShardRegistry
}

// NewCalendarRepository construye el adaptador de persistencia para eventos.
func NewCalendarRepository(shards *ShardRegistry) *CalendarRepo {
	return &CalendarRepo{shards: shards}
}

// Create persiste un evento en el shard del workspace.
func (r *CalendarRepo) Create(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, workspace_id, project_id, title, description,
			starts_at, ends_at, all_day, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.shards.Resolve(ctx, e.WorkspaceID).Pool.Exec(ctx, query,
		e.ID, e.WorkspaceID, e.ProjectID, e.Title, e.Description,
		e.StartsAt, e.EndsAt, e.AllDay, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento del workspace. Devuelve (nil, nil) si no existe.
func (r *CalendarRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.CalendarEvent, error) {
	query := `
		SELECT id, workspace_id, project_id, title, description, starts_at, ends_at, all_day,
			created_by, created_at, updated_at
		FROM calendar_events WHERE workspace_id = $1 AND id = $2`
	var e entity.CalendarEvent
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&e.ID, &e.WorkspaceID, &e.ProjectID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt,
		&e.AllDay, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	return &e, nil
}

// ListRange lista los eventos del workspace que se solapan con [from, to].
func (r *CalendarRepo) ListRange(ctx context.Context, workspaceID string, from, to time.Time) ([]*entity.CalendarEvent, error) {
	query := `
		SELECT id, workspace_id, project_id, title, description, starts_at, ends_at, all_day,
			created_by, created_at, updated_at
		FROM calendar_events
		WHERE workspace_id = $1 AND starts_at <= $3 AND ends_at >= $2
		ORDER BY starts_at`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()
	var list []*entity.CalendarEvent
	for rows.Next() {
		var e entity.CalendarEvent
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &e.ProjectID, &e.Title, &e.Description,
			&e.StartsAt, &e.EndsAt, &e.AllDay, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *CalendarRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM calendar_events WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count calendar events: %w", err)
	}
	return n, nil
}

// Update actualiza un evento.
func (r *CalendarRepo) Update(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET title = $3, description = $4, starts_at = $5, ends_at = $6,
			all_day = $7, updated_at = $8
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, e.WorkspaceID).Pool.Exec(ctx, query,
		e.WorkspaceID, e.ID, e.Title, e.Description, e.StartsAt, e.EndsAt, e.AllDay, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}
	return nil
}

// Delete elimina un evento del workspace.
func (r *CalendarRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM calendar_events WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}
