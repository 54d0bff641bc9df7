package entity

import (
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// WorkspaceMember relación (workspace, usuario) con rol. Invariante de unicidad:
// a lo sumo una fila por par (WorkspaceID, UserID).
//
// Los memberships NUNCA se shardean por workspace: viven siempre en el shard
// primario, porque deben poder consultarse sin conocer antes el shard del
// workspace (requisito de bootstrapping del Guard).
type WorkspaceMember struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        plan.Role
	CreatedAt   time.Time
}
