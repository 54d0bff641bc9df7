package dto

import "time"

// CreateTeamRequest alta de team.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TeamResponse vista de team.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamListResponse listado de teams.
type TeamListResponse struct {
	Items []TeamResponse `json:"items"`
}

// AddTeamMemberRequest agrega un usuario (ya miembro del workspace) al team.
type AddTeamMemberRequest struct {
	UserID string `json:"user_id"`
}
