package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// CommentUseCase comentarios sobre tareas.
type CommentUseCase struct {
	comments repository.CommentRepository
	tasks    repository.TaskRepository
	guard    *access.Guard
	bus      *events.Bus
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(
	comments repository.CommentRepository,
	tasks repository.TaskRepository,
	guard *access.Guard,
	bus *events.Bus,
) *CommentUseCase {
	return &CommentUseCase{comments: comments, tasks: tasks, guard: guard, bus: bus}
}

// Create agrega un comentario a una tarea del workspace. Los comentarios no
// consumen cuota.
func (uc *CommentUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if in.Body == "" || in.TaskID == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.tasks.GetByID(ctx, workspaceID, in.TaskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	c := &entity.Comment{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TaskID:      in.TaskID,
		UserID:      actorID,
		Body:        in.Body,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	ev := events.Event{
		Action:      "commented",
		EntityKind:  "task",
		EntityID:    t.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Title,
	}
	if t.AssigneeID != nil && *t.AssigneeID != actorID {
		ev.TargetUser = *t.AssigneeID
	}
	uc.bus.Publish(ev)
	return commentToResponse(c), nil
}

// ListByTask lista los comentarios de una tarea.
func (uc *CommentUseCase) ListByTask(ctx context.Context, workspaceID, taskID string) (*dto.CommentListResponse, error) {
	list, err := uc.comments.ListByTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}
	out := &dto.CommentListResponse{Items: make([]dto.CommentResponse, 0, len(list))}
	for _, c := range list {
		out.Items = append(out.Items, *commentToResponse(c))
	}
	return out, nil
}

// DeleteByID borra un comentario conocido solo por su ID (ej. desde una
// notificación). Primero lo localiza con el fan-out del router; el comentario
// trae su WorkspaceID, con el que se autoriza al actor y se borra en el mismo
// shard donde se lo encontró. Si el actor no pertenece a ese workspace la
// respuesta es NotFound, no Forbidden: no se revela la existencia del recurso.
func (uc *CommentUseCase) DeleteByID(ctx context.Context, actorID, commentID string) error {
	c, err := uc.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	member, err := uc.guard.VerifyAccess(ctx, actorID, c.WorkspaceID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrNotFound
	}
	if c.UserID != actorID {
		admin, err := uc.guard.RequireAdmin(ctx, actorID, c.WorkspaceID)
		if err != nil {
			return err
		}
		if !admin {
			return domain.ErrForbidden
		}
	}
	return uc.comments.Delete(ctx, c.WorkspaceID, c.ID)
}

func commentToResponse(c *entity.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
