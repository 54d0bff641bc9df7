package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// CalendarRepository puerto de persistencia para eventos de calendario (shard-local).
type CalendarRepository interface {
	Create(ctx context.Context, e *entity.CalendarEvent) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.CalendarEvent, error)
	ListRange(ctx context.Context, workspaceID string, from, to time.Time) ([]*entity.CalendarEvent, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Update(ctx context.Context, e *entity.CalendarEvent) error
	Delete(ctx context.Context, workspaceID, id string) error
}
