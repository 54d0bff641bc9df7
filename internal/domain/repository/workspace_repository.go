package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// WorkspaceRepository define el puerto de persistencia para Workspace (DIP).
// La implementación vive en infrastructure y opera SIEMPRE sobre el shard
// primario: el workspace es la raíz de tenant y debe poder resolverse antes de
// conocer su shard. Convención: GetByID devuelve (nil, nil) si no existe.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *entity.Workspace) error
	GetByID(ctx context.Context, id string) (*entity.Workspace, error)
	UpdateName(ctx context.Context, id, name string) error
	// UpdateBilling sobrescribe el registro de billing completo (upsert
	// last-write-wins con clave workspace); lo usa solo el reconciler.
	UpdateBilling(ctx context.Context, id string, rec entity.BillingRecord) error
	Delete(ctx context.Context, id string) error
}
