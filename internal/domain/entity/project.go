package entity

import "time"

// Project contenedor de trabajo dentro de un workspace.
// Entidad shard-local: la fila vive físicamente en el shard que el Shard
// Registry resuelve para WorkspaceID (las FK entre shards están prohibidas).
type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	Description string
	Color       string
	Status      string // active, archived
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
