package entity

import "time"

// BootRequest registro de una consulta al asistente de IA (boots). Shard-local.
// La cuota de boots se calcula contando estas filas dentro del período de
// cobro actual del workspace, nunca con un contador acumulado.
type BootRequest struct {
	ID          string
	WorkspaceID string
	UserID      string
	Prompt      string
	TokensUsed  int
	CreatedAt   time.Time
}
