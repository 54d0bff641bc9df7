package dto

import "time"

// MemberResponse miembro del workspace con su rol.
type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberListResponse listado de miembros.
type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
}

// CreateInviteRequest invitación a un workspace (opcionalmente a un team).
type CreateInviteRequest struct {
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	TeamID *string `json:"team_id,omitempty"`
}

// InviteResponse invitación con su estado computado (expired se deriva del
// vencimiento, no se almacena).
type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TeamID    *string   `json:"team_id,omitempty"`
	Token     string    `json:"token,omitempty"` // solo visible al crear
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteListResponse listado de invitaciones.
type InviteListResponse struct {
	Items []InviteResponse `json:"items"`
}

// AcceptInviteRequest aceptación por token.
type AcceptInviteRequest struct {
	Token string `json:"token"`
}
