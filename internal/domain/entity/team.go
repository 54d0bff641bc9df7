package entity

import "time"

// Team grupo de trabajo dentro de un workspace. Shard-local (a diferencia de
// WorkspaceMember): verificar pertenencia a un team requiere resolver primero
// el shard del workspace vía el router.
type Team struct {
	ID          string
	WorkspaceID string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember pertenencia de un usuario a un team. Shard-local.
type TeamMember struct {
	ID          string
	WorkspaceID string
	TeamID      string
	UserID      string
	CreatedAt   time.Time
}
