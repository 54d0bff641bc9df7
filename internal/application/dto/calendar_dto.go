package dto

import "time"

// CreateEventRequest alta de evento de calendario.
type CreateEventRequest struct {
	ProjectID   *string   `json:"project_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
}

// EventResponse vista de evento.
type EventResponse struct {
	ID          string    `json:"id"`
	ProjectID   *string   `json:"project_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
	CreatedBy   string    `json:"created_by"`
}

// EventListResponse eventos dentro de un rango.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
}
