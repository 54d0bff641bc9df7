package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// IntegrationRepository puerto de persistencia para integraciones (shard-local).
type IntegrationRepository interface {
	Create(ctx context.Context, i *entity.Integration) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.Integration, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Integration, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	Update(ctx context.Context, i *entity.Integration) error
	Delete(ctx context.Context, workspaceID, id string) error
}
