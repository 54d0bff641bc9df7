package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// CalendarUseCase eventos del calendario del workspace.
type CalendarUseCase struct {
	calendar repository.CalendarRepository
	ledger   *quota.Ledger
	bus      *events.Bus
}

// NewCalendarUseCase construye el caso de uso.
func NewCalendarUseCase(calendar repository.CalendarRepository, ledger *quota.Ledger, bus *events.Bus) *CalendarUseCase {
	return &CalendarUseCase{calendar: calendar, ledger: ledger, bus: bus}
}

// Create crea un evento de calendario.
func (uc *CalendarUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	if in.Title == "" || in.EndsAt.Before(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryCalendarEvents)
	defer unlock()

	used, err := uc.calendar.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryCalendarEvents, used); err != nil {
		return nil, err
	}

	now := time.Now()
	e := &entity.CalendarEvent{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		AllDay:      in.AllDay,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.calendar.Create(ctx, e); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "created",
		EntityKind:  "calendar_event",
		EntityID:    e.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      e.Title,
	})
	return eventToResponse(e), nil
}

// ListRange lista los eventos del workspace dentro de un rango de fechas.
func (uc *CalendarUseCase) ListRange(ctx context.Context, workspaceID string, from, to time.Time) (*dto.EventListResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.calendar.ListRange(ctx, workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.EventListResponse{Items: make([]dto.EventResponse, 0, len(list))}
	for _, e := range list {
		out.Items = append(out.Items, *eventToResponse(e))
	}
	return out, nil
}

// Delete elimina un evento.
func (uc *CalendarUseCase) Delete(ctx context.Context, workspaceID, id string) error {
	e, err := uc.calendar.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.calendar.Delete(ctx, workspaceID, id)
}

func eventToResponse(e *entity.CalendarEvent) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		AllDay:      e.AllDay,
		CreatedBy:   e.CreatedBy,
	}
}
