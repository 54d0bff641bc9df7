package entity

import "time"

// Integration conexión del workspace con un servicio externo (Slack, GitHub...).
// Shard-local. El secreto se guarda cifrado por la capa de infraestructura.
type Integration struct {
	ID          string
	WorkspaceID string
	Kind        string // slack, github, webhook
	Name        string
	TargetURL   string
	Enabled     bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
