package entity

import "time"

// CalendarEvent evento del calendario del workspace. Shard-local.
// La expansión de recurrencias ocurre del lado del cliente, no aquí.
type CalendarEvent struct {
	ID          string
	WorkspaceID string
	ProjectID   *string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	AllDay      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
