package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ActivityRepository puerto de persistencia para el historial de actividad
// (shard-local). Las escrituras vienen del bus post-commit y pueden fallar sin
// propagar el error a la mutación original.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	// ListSince aplica la ventana de retención del plan: solo entradas con
	// CreatedAt >= since.
	ListSince(ctx context.Context, workspaceID string, since time.Time, limit int) ([]*entity.Activity, error)
	// CountByKindSince agrega la actividad visible por tipo de entidad.
	CountByKindSince(ctx context.Context, workspaceID string, since time.Time) (map[string]int, error)
}

// NotificationRepository puerto de persistencia para notificaciones (shard-local).
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, workspaceID, userID string, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, workspaceID, id string) error
}
