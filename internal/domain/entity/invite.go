package entity

import (
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// InviteStatus estado persistido de una invitación. "expired" no se guarda:
// se computa contra ExpiresAt al momento de leer.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRevoked  InviteStatus = "revoked"
)

// Invite invitación con token y vencimiento para unirse a un workspace,
// opcionalmente limitada a un team, con un rol destino.
type Invite struct {
	ID          string
	WorkspaceID string
	TeamID      *string // nil = invitación a todo el workspace
	Email       string
	Token       string
	Role        plan.Role
	Status      InviteStatus
	InvitedBy   string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired informa si la invitación venció (estado computado, no almacenado).
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Pending informa si la invitación sigue siendo aceptable a la hora dada.
func (i *Invite) Pending(now time.Time) bool {
	return i.Status == InvitePending && !i.Expired(now)
}
