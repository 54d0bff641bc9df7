package dto

import "time"

// CreateTaskRequest alta de tarea.
type CreateTaskRequest struct {
	ProjectID   string     `json:"project_id"`
	BoardID     *string    `json:"board_id,omitempty"`
	ColumnID    *string    `json:"column_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// UpdateTaskRequest edición de tarea.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	ColumnID    *string    `json:"column_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Position    int        `json:"position"`
}

// TaskResponse vista de tarea.
type TaskResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	ProjectID   string     `json:"project_id"`
	BoardID     *string    `json:"board_id,omitempty"`
	ColumnID    *string    `json:"column_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Position    int        `json:"position"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskListResponse listado paginado de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateSubtaskRequest alta de subtarea.
type CreateSubtaskRequest struct {
	Title string `json:"title"`
}

// SubtaskResponse vista de subtarea.
type SubtaskResponse struct {
	ID       string `json:"id"`
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Position int    `json:"position"`
}

// CreateTimeLogRequest registro de tiempo sobre una tarea.
type CreateTimeLogRequest struct {
	Minutes  int        `json:"minutes"`
	Note     string     `json:"note"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
}

// TimeLogResponse vista de registro de tiempo.
type TimeLogResponse struct {
	ID       string    `json:"id"`
	TaskID   string    `json:"task_id"`
	UserID   string    `json:"user_id"`
	Minutes  int       `json:"minutes"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// CreateTagRequest alta de etiqueta del workspace.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TagResponse etiqueta aplicable a tareas.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TagListResponse etiquetas del workspace.
type TagListResponse struct {
	Items []TagResponse `json:"items"`
}
