package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, workspace_id, project_id, board_id, column_id, title, description,
	status, priority, assignee_id, due_at, position, created_by, created_at, updated_at`

// TaskRepo implementación del puerto TaskRepository. Shard-local; las tareas y
// sus agregados (subtareas, time logs, tags) viven en el shard del workspace.
type TaskRepo struct {
	shards *ShardRegistry
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(shards *ShardRegistry) *TaskRepo {
	return &TaskRepo{shards: shards}
}

// Create persiste una tarea en el shard del workspace.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.shards.Resolve(ctx, t.WorkspaceID).Pool.Exec(ctx, query,
		t.ID, t.WorkspaceID, t.ProjectID, t.BoardID, t.ColumnID, t.Title, t.Description,
		t.Status, t.Priority, t.AssigneeID, t.DueAt, t.Position, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea del workspace. Devuelve (nil, nil) si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE workspace_id = $1 AND id = $2`
	t, err := scanTask(r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx, query, workspaceID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return t, nil
}

// FindByID localiza una tarea conocida solo por su ID con el fan-out del
// router: orden ascendente de shards, primer hit gana.
func (r *TaskRepo) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	var found *entity.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	_, err := r.shards.FindAcrossShards(ctx, func(ctx context.Context, s *Shard) (bool, error) {
		t, err := scanTask(s.Pool.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		found = t
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByProject lista las tareas de un proyecto con paginación.
func (r *TaskRepo) ListByProject(ctx context.Context, workspaceID, projectID string, limit, offset int) ([]*entity.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE workspace_id = $1 AND project_id = $2
		ORDER BY position, created_at LIMIT $3 OFFSET $4`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByWorkspace conteo vivo para el Quota Ledger.
func (r *TaskRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.shards.Resolve(ctx, workspaceID).Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE workspace_id = $1`, workspaceID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// Update actualiza una tarea.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks SET project_id = $3, board_id = $4, column_id = $5, title = $6, description = $7,
			status = $8, priority = $9, assignee_id = $10, due_at = $11, position = $12, updated_at = $13
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, t.WorkspaceID).Pool.Exec(ctx, query,
		t.WorkspaceID, t.ID, t.ProjectID, t.BoardID, t.ColumnID, t.Title, t.Description,
		t.Status, t.Priority, t.AssigneeID, t.DueAt, t.Position, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete elimina una tarea del workspace.
func (r *TaskRepo) Delete(ctx context.Context, workspaceID, id string) error {
	_, err := r.shards.Resolve(ctx, workspaceID).Pool.Exec(ctx,
		`DELETE FROM tasks WHERE workspace_id = $1 AND id = $2`, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CreateSubtask persiste una subtarea en el shard de su tarea.
func (r *TaskRepo) CreateSubtask(ctx context.Context, s *entity.Subtask) error {
	query := `
		INSERT INTO subtasks (id, workspace_id, task_id, title, done, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.shards.Resolve(ctx, s.WorkspaceID).Pool.Exec(ctx, query,
		s.ID, s.WorkspaceID, s.TaskID, s.Title, s.Done, s.Position, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subtask: %w", err)
	}
	return nil
}

// ListSubtasks lista las subtareas de una tarea ordenadas por posición.
func (r *TaskRepo) ListSubtasks(ctx context.Context, workspaceID, taskID string) ([]*entity.Subtask, error) {
	query := `
		SELECT id, workspace_id, task_id, title, done, position, created_at
		FROM subtasks WHERE workspace_id = $1 AND task_id = $2 ORDER BY position`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subtask
	for rows.Next() {
		var s entity.Subtask
		if err := rows.Scan(&s.ID, &s.WorkspaceID, &s.TaskID, &s.Title, &s.Done, &s.Position, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateSubtask actualiza una subtarea.
func (r *TaskRepo) UpdateSubtask(ctx context.Context, s *entity.Subtask) error {
	query := `
		UPDATE subtasks SET title = $3, done = $4, position = $5
		WHERE workspace_id = $1 AND id = $2`
	_, err := r.shards.Resolve(ctx, s.WorkspaceID).Pool.Exec(ctx, query,
		s.WorkspaceID, s.ID, s.Title, s.Done, s.Position,
	)
	if err != nil {
		return fmt.Errorf("update subtask: %w", err)
	}
	return nil
}

// CreateTimeLog persiste un registro de tiempo.
func (r *TaskRepo) CreateTimeLog(ctx context.Context, tl *entity.TimeLog) error {
	query := `
		INSERT INTO time_logs (id, workspace_id, task_id, user_id, minutes, note, logged_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.shards.Resolve(ctx, tl.WorkspaceID).Pool.Exec(ctx, query,
		tl.ID, tl.WorkspaceID, tl.TaskID, tl.UserID, tl.Minutes, tl.Note, tl.LoggedAt, tl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert time log: %w", err)
	}
	return nil
}

// ListTimeLogs lista los registros de tiempo de una tarea.
func (r *TaskRepo) ListTimeLogs(ctx context.Context, workspaceID, taskID string) ([]*entity.TimeLog, error) {
	query := `
		SELECT id, workspace_id, task_id, user_id, minutes, note, logged_at, created_at
		FROM time_logs WHERE workspace_id = $1 AND task_id = $2 ORDER BY logged_at DESC`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeLog
	for rows.Next() {
		var tl entity.TimeLog
		if err := rows.Scan(&tl.ID, &tl.WorkspaceID, &tl.TaskID, &tl.UserID, &tl.Minutes, &tl.Note,
			&tl.LoggedAt, &tl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time log: %w", err)
		}
		list = append(list, &tl)
	}
	return list, rows.Err()
}

// CreateTag persiste una etiqueta del workspace.
func (r *TaskRepo) CreateTag(ctx context.Context, tag *entity.Tag) error {
	query := `
		INSERT INTO tags (id, workspace_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.shards.Resolve(ctx, tag.WorkspaceID).Pool.Exec(ctx, query,
		tag.ID, tag.WorkspaceID, tag.Name, tag.Color, tag.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// ListTags lista las etiquetas del workspace.
func (r *TaskRepo) ListTags(ctx context.Context, workspaceID string) ([]*entity.Tag, error) {
	query := `
		SELECT id, workspace_id, name, color, created_at
		FROM tags WHERE workspace_id = $1 ORDER BY name`
	rows, err := r.shards.Resolve(ctx, workspaceID).Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.ID, &tag.WorkspaceID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &tag)
	}
	return list, rows.Err()
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.ProjectID, &t.BoardID, &t.ColumnID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.AssigneeID, &t.DueAt, &t.Position, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
