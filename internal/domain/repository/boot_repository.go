package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// BootRepository puerto de persistencia para el log de requests al asistente
// (shard-local). La cuota de boots es ventaneada: se cuenta desde el inicio
// del período de cobro actual, no desde siempre.
type BootRepository interface {
	Create(ctx context.Context, b *entity.BootRequest) error
	CountSince(ctx context.Context, workspaceID string, since time.Time) (int, error)
	ListRecent(ctx context.Context, workspaceID string, limit int) ([]*entity.BootRequest, error)
}
