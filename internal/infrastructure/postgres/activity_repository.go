package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)
var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository. Shard-local; las
// escrituras llegan del consumidor del bus post-commit.
type ActivityRepo struct {
	shards *ShardRegistry
}

// NewActivityRepository construye el adaptador de persistencia para actividad.
func NewActivityRepository(shards *ShardRegistry) *ActivityRepo {
	return &ActivityRepo{shards: shards}
}

// Create persiste una entrada de actividad en el shard del workspace.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activity (id, workspace_id, actor_id, action, entity_kind, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.shards.Resolve(ctx, a.WorkspaceID).Pool.Exec(ctx, query,
		a.ID, a.WorkspaceID, a.ActorID, a.Action, a.EntityKind, a.EntityID, a.Detail, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListSince lista la actividad del workspace desde `since` (ventana de
// retención del plan), de la más reciente a la más vieja.
func (r *ActivityRepo) ListSince(ctx context.Context, workspaceID string, since time.Time, limit int) ([]*entity.Activity, error) {
	query := `
		SELECT id, workspace_id, actor_id, action, entity_kind, entity_id, detail, created_at
		FROM activity WHERE workspace_id = $1 AND created_at >= $2
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.ActorID, &a.Action, &a.EntityKind,
			&a.EntityID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByKindSince agrega la actividad visible por tipo de entidad.
func (r *ActivityRepo) CountByKindSince(ctx context.Context, workspaceID string, since time.Time) (map[string]int, error) {
	query := `
		SELECT entity_kind, COUNT(*)
		FROM activity WHERE workspace_id = $1 AND created_at >= $2
		GROUP BY entity_kind`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, since)
	if err != nil {
		return nil, fmt.Errorf("count activity by kind: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// NotificationRepo implementación del puerto NotificationRepository. Shard-local.
type NotificationRepo struct {
	shards *ShardRegistry
}

// NewNotificationRepository construye el adaptador para notificaciones.
func NewNotificationRepository(shards *ShardRegistry) *NotificationRepo {
	return &NotificationRepo{shards: shards}
}

// Create persiste una notificación en el shard del workspace.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, workspace_id, user_id, kind, title, body, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.shards.Resolve(ctx, n.WorkspaceID).Pool.Exec(ctx, query,
		n.ID, n.WorkspaceID, n.UserID, n.Kind, n.Title, n.Body, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser lista las notificaciones de un usuario en el workspace.
func (r *NotificationRepo) ListByUser(ctx context.Context, workspaceID, userID string, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, workspace_id, user_id, kind, title, body, read_at, created_at
		FROM notifications WHERE workspace_id = $1 AND user_id = $2
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.WorkspaceID, &n.UserID, &n.Kind, &n.Title, &n.Body,
			&n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`UPDATE notifications SET read_at = $3 WHERE workspace_id = $1 AND id = $2 AND read_at IS NULL`,
		workspaceID, id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
