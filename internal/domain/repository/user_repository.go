package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios. Shard primario.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
