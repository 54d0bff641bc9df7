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

// TaskUseCase CRUD de tareas, subtareas y time logs con cuota en la creación.
type TaskUseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	boards   repository.BoardRepository
	ledger   *quota.Ledger
	bus      *events.Bus
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	boards repository.BoardRepository,
	ledger *quota.Ledger,
	bus *events.Bus,
) *TaskUseCase {
	return &TaskUseCase{tasks: tasks, projects: projects, boards: boards, ledger: ledger, bus: bus}
}

// Create crea una tarea dentro de un proyecto del workspace.
func (uc *TaskUseCase) Create(ctx context.Context, actorID, workspaceID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.Title == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projects.GetByID(ctx, workspaceID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryTasks)
	defer unlock()

	used, err := uc.tasks.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryTasks, used); err != nil {
		return nil, err
	}

	now := time.Now()
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}
	t := &entity.Task{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		ProjectID:   in.ProjectID,
		BoardID:     in.BoardID,
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Description: in.Description,
		Status:      "todo",
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		DueAt:       in.DueAt,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	ev := events.Event{
		Action:      "created",
		EntityKind:  "task",
		EntityID:    t.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Title,
	}
	if t.AssigneeID != nil {
		ev.TargetUser = *t.AssigneeID
	}
	uc.bus.Publish(ev)
	return taskToResponse(t), nil
}

// GetByID obtiene una tarea del workspace.
func (uc *TaskUseCase) GetByID(ctx context.Context, workspaceID, id string) (*dto.TaskResponse, error) {
	t, err := uc.tasks.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return taskToResponse(t), nil
}

// ListByProject lista tareas de un proyecto con paginación.
func (uc *TaskUseCase) ListByProject(ctx context.Context, workspaceID, projectID string, page dto.PageRequest) (*dto.TaskListResponse, error) {
	page.DefaultPage()
	list, err := uc.tasks.ListByProject(ctx, workspaceID, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.TaskListResponse{
		Items: make([]dto.TaskResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range list {
		out.Items = append(out.Items, *taskToResponse(t))
	}
	return out, nil
}

// Update edita una tarea. Si la mueve a otra columna, primero localiza la
// columna (fan-out por ID) y verifica que el board dueño pertenezca al mismo
// workspace: una columna de otro tenant es un NotFound, no un error.
func (uc *TaskUseCase) Update(ctx context.Context, actorID, workspaceID, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.tasks.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	if in.ColumnID != nil && (t.ColumnID == nil || *in.ColumnID != *t.ColumnID) {
		col, err := uc.boards.FindColumnByID(ctx, *in.ColumnID)
		if err != nil {
			return nil, err
		}
		if col.WorkspaceID != workspaceID {
			return nil, domain.ErrNotFound
		}
		t.ColumnID = in.ColumnID
		t.BoardID = &col.BoardID
	}

	prevAssignee := t.AssigneeID
	if in.Title != "" {
		t.Title = in.Title
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Status != "" {
		t.Status = in.Status
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	if in.AssigneeID != nil {
		t.AssigneeID = in.AssigneeID
	}
	if in.DueAt != nil {
		t.DueAt = in.DueAt
	}
	if in.Position != 0 {
		t.Position = in.Position
	}
	t.UpdatedAt = time.Now()

	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	ev := events.Event{
		Action:      "updated",
		EntityKind:  "task",
		EntityID:    t.ID,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Title,
	}
	if t.AssigneeID != nil && (prevAssignee == nil || *prevAssignee != *t.AssigneeID) {
		ev.Action = "assigned"
		ev.TargetUser = *t.AssigneeID
	}
	uc.bus.Publish(ev)
	return taskToResponse(t), nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, actorID, workspaceID, id string) error {
	t, err := uc.tasks.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if err := uc.tasks.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{
		Action:      "deleted",
		EntityKind:  "task",
		EntityID:    id,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Detail:      t.Title,
	})
	return nil
}

// AddSubtask agrega una subtarea (sin cuota propia: cuenta dentro de la tarea).
func (uc *TaskUseCase) AddSubtask(ctx context.Context, workspaceID, taskID string, in dto.CreateSubtaskRequest) (*dto.SubtaskResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.tasks.GetByID(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	s := &entity.Subtask{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TaskID:      taskID,
		Title:       in.Title,
		CreatedAt:   time.Now(),
	}
	if err := uc.tasks.CreateSubtask(ctx, s); err != nil {
		return nil, err
	}
	return subtaskToResponse(s), nil
}

// ListSubtasks lista las subtareas de una tarea.
func (uc *TaskUseCase) ListSubtasks(ctx context.Context, workspaceID, taskID string) ([]dto.SubtaskResponse, error) {
	list, err := uc.tasks.ListSubtasks(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubtaskResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *subtaskToResponse(s))
	}
	return out, nil
}

// LogTime registra tiempo sobre una tarea.
func (uc *TaskUseCase) LogTime(ctx context.Context, actorID, workspaceID, taskID string, in dto.CreateTimeLogRequest) (*dto.TimeLogResponse, error) {
	if in.Minutes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.tasks.GetByID(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	loggedAt := time.Now()
	if in.LoggedAt != nil {
		loggedAt = *in.LoggedAt
	}
	tl := &entity.TimeLog{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TaskID:      taskID,
		UserID:      actorID,
		Minutes:     in.Minutes,
		Note:        in.Note,
		LoggedAt:    loggedAt,
		CreatedAt:   time.Now(),
	}
	if err := uc.tasks.CreateTimeLog(ctx, tl); err != nil {
		return nil, err
	}
	return &dto.TimeLogResponse{
		ID:       tl.ID,
		TaskID:   tl.TaskID,
		UserID:   tl.UserID,
		Minutes:  tl.Minutes,
		Note:     tl.Note,
		LoggedAt: tl.LoggedAt,
	}, nil
}

// CreateTag crea una etiqueta del workspace. Las etiquetas no tienen cuota
// propia: viven dentro del presupuesto de tareas del plan.
func (uc *TaskUseCase) CreateTag(ctx context.Context, workspaceID string, in dto.CreateTagRequest) (*dto.TagResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	tag := &entity.Tag{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Color:       in.Color,
		CreatedAt:   time.Now(),
	}
	if err := uc.tasks.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return &dto.TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, CreatedAt: tag.CreatedAt}, nil
}

// ListTags lista las etiquetas del workspace.
func (uc *TaskUseCase) ListTags(ctx context.Context, workspaceID string) (*dto.TagListResponse, error) {
	list, err := uc.tasks.ListTags(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := &dto.TagListResponse{Items: make([]dto.TagResponse, 0, len(list))}
	for _, tag := range list {
		out.Items = append(out.Items, dto.TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, CreatedAt: tag.CreatedAt})
	}
	return out, nil
}

func taskToResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		ProjectID:   t.ProjectID,
		BoardID:     t.BoardID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		DueAt:       t.DueAt,
		Position:    t.Position,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func subtaskToResponse(s *entity.Subtask) *dto.SubtaskResponse {
	return &dto.SubtaskResponse{
		ID:       s.ID,
		TaskID:   s.TaskID,
		Title:    s.Title,
		Done:     s.Done,
		Position: s.Position,
	}
}
