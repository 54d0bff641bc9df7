package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// InviteRepository puerto de persistencia para invitaciones. Shard primario.
type InviteRepository interface {
	Create(ctx context.Context, inv *entity.Invite) error
	// GetByToken devuelve (nil, nil) si el token no existe.
	GetByToken(ctx context.Context, token string) (*entity.Invite, error)
	GetByID(ctx context.Context, id string) (*entity.Invite, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Invite, error)
	// CountPending cuenta invitaciones en estado pending y no vencidas a `now`
	// (el vencimiento se computa, no se almacena).
	CountPending(ctx context.Context, workspaceID string, now time.Time) (int, error)
	UpdateStatus(ctx context.Context, id string, status entity.InviteStatus) error
}
