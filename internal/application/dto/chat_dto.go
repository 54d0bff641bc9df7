package dto

import "time"

// SendMessageRequest mensaje al canal general o al de un team.
type SendMessageRequest struct {
	TeamID *string `json:"team_id,omitempty"`
	Body   string  `json:"body"`
}

// ChatMessageResponse vista de mensaje.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	TeamID    *string   `json:"team_id,omitempty"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatListResponse historial paginado.
type ChatListResponse struct {
	Items []ChatMessageResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
