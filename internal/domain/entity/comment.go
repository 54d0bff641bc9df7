package entity

import "time"

// Comment comentario sobre una tarea. Shard-local.
// Es el caso típico de lookup por ID sin workspace conocido (ej. borrar un
// comentario desde una notificación): se localiza con el fan-out del router.
type Comment struct {
	ID          string
	WorkspaceID string
	TaskID      string
	UserID      string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
