package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/ports"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

const bootsTimeout = 10 * time.Second

// BootsUseCase consultas al asistente de IA con cuota ventaneada: a diferencia
// de las categorías acumulativas, el uso se cuenta desde el inicio del período
// de cobro actual del workspace y se reinicia solo con cada ciclo.
type BootsUseCase struct {
	boots      repository.BootRepository
	workspaces repository.WorkspaceRepository
	assistant  ports.AssistantService
	ledger     *quota.Ledger
}

// NewBootsUseCase construye el caso de uso.
func NewBootsUseCase(
	boots repository.BootRepository,
	workspaces repository.WorkspaceRepository,
	assistant ports.AssistantService,
	ledger *quota.Ledger,
) *BootsUseCase {
	return &BootsUseCase{boots: boots, workspaces: workspaces, assistant: assistant, ledger: ledger}
}

// Ask envía el prompt al asistente si el workspace tiene cupo en el período.
// La secuencia contar→verificar→llamar→registrar corre bajo el lock de la
// categoría: dos consultas concurrentes en el borde del cupo no pueden colarse
// las dos.
func (uc *BootsUseCase) Ask(ctx context.Context, actorID, workspaceID string, in dto.BootsRequest) (*dto.BootsResponse, error) {
	if in.Prompt == "" {
		return nil, domain.ErrInvalidInput
	}
	ws, err := uc.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryBoots)
	defer unlock()

	now := time.Now()
	since := quota.PeriodStart(ws, now)
	used, err := uc.boots.CountSince(ctx, workspaceID, since)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryBoots, used); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, bootsTimeout)
	defer cancel()
	reply, err := uc.assistant.Complete(callCtx, in.Prompt)
	if err != nil {
		return nil, err
	}

	rec := &entity.BootRequest{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		UserID:      actorID,
		Prompt:      in.Prompt,
		TokensUsed:  reply.TokensUsed,
		CreatedAt:   now,
	}
	if err := uc.boots.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &dto.BootsResponse{
		Answer:      reply.Answer,
		TokensUsed:  reply.TokensUsed,
		UsedInCycle: used + 1,
	}, nil
}
