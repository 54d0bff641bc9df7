package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var integrationKinds = map[string]bool{
	"slack":   true,
	"github":  true,
	"webhook": true,
}

// IntegrationUseCase integraciones del workspace con servicios externos.
type IntegrationUseCase struct {
	integrations repository.IntegrationRepository
	guard        *access.Guard
	ledger       *quota.Ledger
}

// NewIntegrationUseCase construye el caso de uso.
func NewIntegrationUseCase(
	integrations repository.IntegrationRepository,
	guard *access.Guard,
	ledger *quota.Ledger,
) *IntegrationUseCase {
	return &IntegrationUseCase{integrations: integrations, guard: guard, ledger: ledger}
}

// Create registra una integración. Solo owner o admin.
func (uc *IntegrationUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateIntegrationRequest) (*dto.IntegrationResponse, error) {
	if in.Name == "" || !integrationKinds[in.Kind] {
		return nil, domain.ErrInvalidInput
	}
	admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryIntegrations)
	defer unlock()

	used, err := uc.integrations.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryIntegrations, used); err != nil {
		return nil, err
	}

	now := time.Now()
	i := &entity.Integration{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Kind:        in.Kind,
		Name:        in.Name,
		TargetURL:   in.TargetURL,
		Enabled:     true,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.integrations.Create(ctx, i); err != nil {
		return nil, err
	}
	return integrationToResponse(i), nil
}

// List lista las integraciones del workspace.
func (uc *IntegrationUseCase) List(ctx context.Context, workspaceID string) (*dto.IntegrationListResponse, error) {
	list, err := uc.integrations.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := &dto.IntegrationListResponse{Items: make([]dto.IntegrationResponse, 0, len(list))}
	for _, i := range list {
		out.Items = append(out.Items, *integrationToResponse(i))
	}
	return out, nil
}

// Delete elimina una integración. Solo owner o admin.
func (uc *IntegrationUseCase) Delete(ctx context.Context, actorID, workspaceID, id string) error {
	admin, err := uc.guard.RequireAdmin(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	i, err := uc.integrations.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	return uc.integrations.Delete(ctx, workspaceID, id)
}

func integrationToResponse(i *entity.Integration) *dto.IntegrationResponse {
	return &dto.IntegrationResponse{
		ID:        i.ID,
		Kind:      i.Kind,
		Name:      i.Name,
		TargetURL: i.TargetURL,
		Enabled:   i.Enabled,
		CreatedAt: i.CreatedAt,
	}
}
