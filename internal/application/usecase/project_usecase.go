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

// ProjectUseCase CRUD de proyectos con cuota en la creación.
type ProjectUseCase struct {
	projects repository.ProjectRepository
	ledger   *quota.Ledger
	bus      *events.Bus
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(projects repository.ProjectRepository, ledger *quota.Ledger, bus *events.Bus) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, ledger: ledger, bus: bus}
}

// Create crea un proyecto. Secuencia contar→verificar→insertar bajo el lock
// de (workspace, projects): dos creaciones concurrentes no pueden leer ambas
// el mismo conteo y superar el techo por uno.
func (uc *ProjectUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryProjects)
	defer unlock()

	used, err := uc.projects.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryProjects, used); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Status:      "active",
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "created",
		EntityKind:  "project",
		EntityID:    p.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      p.Name,
	})
	return projectToResponse(p), nil
}

// GetByID obtiene un proyecto del workspace.
func (uc *ProjectUseCase) GetByID(ctx context.Context, workspaceID, id string) (*dto.ProjectResponse, error) {
	p, err := uc.projects.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return projectToResponse(p), nil
}

// List lista proyectos con paginación.
func (uc *ProjectUseCase) List(ctx context.Context, workspaceID string, page dto.PageRequest) (*dto.ProjectListResponse, error) {
	page.DefaultPage()
	list, err := uc.projects.List(ctx, workspaceID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectListResponse{
		Items: make([]dto.ProjectResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *projectToResponse(p))
	}
	return out, nil
}

// Update edita un proyecto existente.
func (uc *ProjectUseCase) Update(ctx context.Context, actorID, workspaceID, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.projects.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Color != "" {
		p.Color = in.Color
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	p.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{
		Action:      "updated",
		EntityKind:  "project",
		EntityID:    p.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      p.Name,
	})
	return projectToResponse(p), nil
}

// Delete elimina un proyecto.
func (uc *ProjectUseCase) Delete(ctx context.Context, actorID, workspaceID, id string) error {
	p, err := uc.projects.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.projects.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "deleted",
		EntityKind:  "project",
		EntityID:    id,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      p.Name,
	})
	return nil
}

func projectToResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}
