package usecase

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

const activityFeedLimit = 100

// ActivityUseCase lectura del historial de actividad y de notificaciones.
// Las escrituras no pasan por acá: las hace el consumidor del bus de eventos.
type ActivityUseCase struct {
	activity      repository.ActivityRepository
	notifications repository.NotificationRepository
	workspaces    repository.WorkspaceRepository
	ledger        *quota.Ledger
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(
	activity repository.ActivityRepository,
	notifications repository.NotificationRepository,
	workspaces repository.WorkspaceRepository,
	ledger *quota.Ledger,
) *ActivityUseCase {
	return &ActivityUseCase{
		activity:      activity,
		notifications: notifications,
		workspaces:    workspaces,
		ledger:        ledger,
	}
}

// Feed devuelve el historial visible del workspace, recortado a la retención
// en días del plan. Las entradas más viejas no se borran, solo dejan de verse:
// un upgrade las vuelve visibles de nuevo.
func (uc *ActivityUseCase) Feed(ctx context.Context, workspaceID string) (*dto.ActivityListResponse, error) {
	now := time.Now()
	since, err := uc.ledger.RetentionSince(ctx, workspaceID, now)
	if err != nil {
		return nil, err
	}
	list, err := uc.activity.ListSince(ctx, workspaceID, since, activityFeedLimit)
	if err != nil {
		return nil, err
	}

	ws, err := uc.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.ActivityListResponse{
		Items:         make([]dto.ActivityResponse, 0, len(list)),
		RetentionDays: plan.LimitsFor(plan.FromString(string(ws.Plan))).RetentionDays,
	}
	for _, a := range list {
		out.Items = append(out.Items, activityToResponse(a))
	}
	return out, nil
}

// Analytics agrega la actividad visible por tipo de entidad. Gate de plan:
// los planes sin analytics reciben el rechazo de cuota.
func (uc *ActivityUseCase) Analytics(ctx context.Context, workspaceID string) (*dto.AnalyticsResponse, error) {
	if err := uc.ledger.RequireFeature(ctx, workspaceID, plan.CategoryAnalytics); err != nil {
		return nil, err
	}

	now := time.Now()
	since, err := uc.ledger.RetentionSince(ctx, workspaceID, now)
	if err != nil {
		return nil, err
	}
	counts, err := uc.activity.CountByKindSince(ctx, workspaceID, since)
	if err != nil {
		return nil, err
	}

	ws, err := uc.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.AnalyticsResponse{
		WindowDays: plan.LimitsFor(plan.FromString(string(ws.Plan))).RetentionDays,
		ByKind:     counts,
	}
	for _, n := range counts {
		out.TotalEvents += n
	}
	return out, nil
}

// Notifications lista los avisos del usuario en el workspace.
func (uc *ActivityUseCase) Notifications(ctx context.Context, workspaceID, userID string) (*dto.NotificationListResponse, error) {
	list, err := uc.notifications.ListByUser(ctx, workspaceID, userID, activityFeedLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(list))}
	for _, n := range list {
		out.Items = append(out.Items, dto.NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkNotificationRead marca un aviso como leído.
func (uc *ActivityUseCase) MarkNotificationRead(ctx context.Context, workspaceID, id string) error {
	return uc.notifications.MarkRead(ctx, workspaceID, id)
}

func activityToResponse(a *entity.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:         a.ID,
		ActorID:    a.ActorID,
		Action:     a.Action,
		EntityKind: a.EntityKind,
		EntityID:   a.EntityID,
		Detail:     a.Detail,
		CreatedAt:  a.CreatedAt,
	}
}
