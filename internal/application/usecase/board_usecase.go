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

// BoardUseCase boards kanban y sus columnas.
type BoardUseCase struct {
	boards   repository.BoardRepository
	projects repository.ProjectRepository
	ledger   *quota.Ledger
	bus      *events.Bus
}

// NewBoardUseCase construye el caso de uso.
func NewBoardUseCase(
	boards repository.BoardRepository,
	projects repository.ProjectRepository,
	ledger *quota.Ledger,
	bus *events.Bus,
) *BoardUseCase {
	return &BoardUseCase{boards: boards, projects: projects, ledger: ledger, bus: bus}
}

// Create crea un board para un proyecto del workspace.
func (uc *BoardUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if in.Name == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projects.GetByID(ctx, workspaceID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryBoards)
	defer unlock()

	used, err := uc.boards.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryBoards, used); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &entity.Board{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.boards.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "created",
		EntityKind:  "board",
		EntityID:    b.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      b.Name,
	})
	return boardToResponse(b), nil
}

// GetByID obtiene un board del workspace.
func (uc *BoardUseCase) GetByID(ctx context.Context, workspaceID, id string) (*dto.BoardResponse, error) {
	b, err := uc.boards.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return boardToResponse(b), nil
}

// ListByProject lista los boards de un proyecto.
func (uc *BoardUseCase) ListByProject(ctx context.Context, workspaceID, projectID string) (*dto.BoardListResponse, error) {
	list, err := uc.boards.ListByProject(ctx, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	out := &dto.BoardListResponse{Items: make([]dto.BoardResponse, 0, len(list))}
	for _, b := range list {
		out.Items = append(out.Items, *boardToResponse(b))
	}
	return out, nil
}

// Delete elimina un board.
func (uc *BoardUseCase) Delete(ctx context.Context, actorID, workspaceID, id string) error {
	b, err := uc.boards.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.boards.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "deleted",
		EntityKind:  "board",
		EntityID:    id,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      b.Name,
	})
	return nil
}

// AddColumn agrega una columna al board. Las columnas no tienen cuota propia.
func (uc *BoardUseCase) AddColumn(ctx context.Context, workspaceID, boardID string, in dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.boards.GetByID(ctx, workspaceID, boardID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	c := &entity.BoardColumn{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		BoardID:     boardID,
		Name:        in.Name,
		Position:    in.Position,
		CreatedAt:   time.Now(),
	}
	if err := uc.boards.CreateColumn(ctx, c); err != nil {
		return nil, err
	}
	return columnToResponse(c), nil
}

// ListColumns lista las columnas de un board ordenadas por posición.
func (uc *BoardUseCase) ListColumns(ctx context.Context, workspaceID, boardID string) ([]dto.ColumnResponse, error) {
	list, err := uc.boards.ListColumns(ctx, workspaceID, boardID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColumnResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *columnToResponse(c))
	}
	return out, nil
}

// DeleteColumn elimina una columna del board.
func (uc *BoardUseCase) DeleteColumn(ctx context.Context, workspaceID, columnID string) error {
	return uc.boards.DeleteColumn(ctx, workspaceID, columnID)
}

func boardToResponse(b *entity.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:        b.ID,
		ProjectID: b.ProjectID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}

func columnToResponse(c *entity.BoardColumn) *dto.ColumnResponse {
	return &dto.ColumnResponse{
		ID:       c.ID,
		BoardID:  c.BoardID,
		Name:     c.Name,
		Position: c.Position,
	}
}
