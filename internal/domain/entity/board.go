package entity

import "time"

// Board tablero kanban de un proyecto. Shard-local.
type Board struct {
	ID          string
	WorkspaceID string
	ProjectID   string
	Name        string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BoardColumn columna de un board. Shard-local, mismo shard que el board.
// Para autorizar operaciones sobre una columna conocida solo por su ID se usa
// el fan-out del router hasta encontrar el board dueño.
type BoardColumn struct {
	ID          string
	WorkspaceID string
	BoardID     string
	Name        string
	Position    int
	CreatedAt   time.Time
}
