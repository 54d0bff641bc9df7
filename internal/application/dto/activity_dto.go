package dto

import "time"

// ActivityResponse entrada del historial (recortado a la retención del plan).
type ActivityResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityListResponse historial visible.
type ActivityListResponse struct {
	Items         []ActivityResponse `json:"items"`
	RetentionDays int                `json:"retention_days"`
}

// AnalyticsResponse resumen de actividad por tipo de entidad dentro de la
// ventana de retención del plan. Solo para planes con analytics habilitado.
type AnalyticsResponse struct {
	WindowDays  int            `json:"window_days"`
	TotalEvents int            `json:"total_events"`
	ByKind      map[string]int `json:"by_kind"`
}

// NotificationResponse aviso dirigido a un usuario.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListResponse avisos del usuario en el workspace.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}
