package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// ActivityRecorder vuelca eventos al historial de actividad del shard dueño.
// La escritura puede fallar sin consecuencias para la mutación original: se
// loggea con contexto (workspace, entidad) y se descarta.
func ActivityRecorder(activities repository.ActivityRepository, log *logger.Logger) Handler {
	return func(ctx context.Context, ev Event) {
		a := &entity.Activity{
			ID:          uuid.New().String(),
			WorkspaceID: ev.WorkspaceID,
			ActorID:     ev.ActorID,
			Action:      ev.Action,
			EntityKind:  ev.EntityKind,
			EntityID:    ev.EntityID,
			Detail:      ev.Detail,
			CreatedAt:   ev.OccurredAt,
		}
		if err := activities.Create(ctx, a); err != nil {
			log.Warn().Err(err).
				Str("workspace_id", ev.WorkspaceID).
				Str("entity_kind", ev.EntityKind).
				Str("entity_id", ev.EntityID).
				Msg("no se pudo registrar actividad")
		}
	}
}

// Notifier crea notificaciones dirigidas cuando el evento trae destinatario
// (ej. asignación de tarea, invitación aceptada).
func Notifier(notifications repository.NotificationRepository, log *logger.Logger) Handler {
	return func(ctx context.Context, ev Event) {
		if ev.TargetUser == "" || ev.TargetUser == ev.ActorID {
			return
		}
		n := &entity.Notification{
			ID:          uuid.New().String(),
			WorkspaceID: ev.WorkspaceID,
			UserID:      ev.TargetUser,
			Kind:        ev.EntityKind + "." + ev.Action,
			Title:       ev.Detail,
			CreatedAt:   ev.OccurredAt,
		}
		if err := notifications.Create(ctx, n); err != nil {
			log.Warn().Err(err).
				Str("workspace_id", ev.WorkspaceID).
				Str("user_id", ev.TargetUser).
				Msg("no se pudo crear notificación")
		}
	}
}
