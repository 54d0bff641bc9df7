package dto

import "time"

// CreateIntegrationRequest alta de integración externa.
type CreateIntegrationRequest struct {
	Kind      string `json:"kind"` // slack, github, webhook
	Name      string `json:"name"`
	TargetURL string `json:"target_url"`
}

// IntegrationResponse vista de integración.
type IntegrationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	TargetURL string    `json:"target_url"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// IntegrationListResponse listado de integraciones.
type IntegrationListResponse struct {
	Items []IntegrationResponse `json:"items"`
}
