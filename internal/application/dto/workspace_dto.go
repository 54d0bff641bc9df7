package dto

import "time"

// CreateWorkspaceRequest creación explícita de un workspace adicional.
type CreateWorkspaceRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// UpdateWorkspaceRequest cambios editables por el usuario. Los campos de
// billing no se tocan por acá: los escribe solo el reconciler.
type UpdateWorkspaceRequest struct {
	Name string `json:"name"`
}

// WorkspaceResponse vista del workspace con su estado de plan/billing.
type WorkspaceResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Plan            string     `json:"plan"`
	BillingInterval string     `json:"billing_interval,omitempty"`
	BillingStatus   string     `json:"billing_status"`
	BillingProvider string     `json:"billing_provider,omitempty"`
	Currency        string     `json:"currency"`
	NextBillingAt   *time.Time `json:"next_billing_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// WorkspaceListResponse listado de workspaces del usuario.
type WorkspaceListResponse struct {
	Items []WorkspaceResponse `json:"items"`
}

// UsageResponse uso actual vs techo por categoría (para la pantalla de plan).
type UsageResponse struct {
	Plan       string          `json:"plan"`
	Categories []CategoryUsage `json:"categories"`
}

// CategoryUsage uso puntual de una categoría. Ceiling -1 = ilimitado.
type CategoryUsage struct {
	Category string `json:"category"`
	Used     int    `json:"used"`
	Ceiling  int    `json:"ceiling"`
}
