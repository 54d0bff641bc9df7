package entity

import "time"

// Task unidad de trabajo dentro de un proyecto. Shard-local.
type Task struct {
	ID          string
	WorkspaceID string
	ProjectID   string
	BoardID     *string // nil si la tarea no está en un board
	ColumnID    *string
	Title       string
	Description string
	Status      string // todo, in_progress, done
	Priority    string // low, medium, high, urgent
	AssigneeID  *string
	DueAt       *time.Time
	Position    int
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subtask ítem de checklist de una tarea. Shard-local, mismo shard que la tarea.
type Subtask struct {
	ID          string
	WorkspaceID string
	TaskID      string
	Title       string
	Done        bool
	Position    int
	CreatedAt   time.Time
}

// TimeLog registro de tiempo imputado a una tarea.
type TimeLog struct {
	ID          string
	WorkspaceID string
	TaskID      string
	UserID      string
	Minutes     int
	Note        string
	LoggedAt    time.Time
	CreatedAt   time.Time
}

// Tag etiqueta de workspace aplicable a tareas.
type Tag struct {
	ID          string
	WorkspaceID string
	Name        string
	Color       string
	CreatedAt   time.Time
}
