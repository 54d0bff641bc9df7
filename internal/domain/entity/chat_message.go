package entity

import "time"

// ChatMessage mensaje de chat de workspace o de team. Shard-local.
// La entrega realtime la hace el colaborador externo de pub/sub; aquí solo se
// persiste el historial.
type ChatMessage struct {
	ID          string
	WorkspaceID string
	TeamID      *string // nil = canal general del workspace
	UserID      string
	Body        string
	CreatedAt   time.Time
}
