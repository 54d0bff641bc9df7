package dto

// RegisterRequest alta de usuario. El workspace se auto-provisiona con el
// nombre dado (o derivado del nombre del usuario si viene vacío).
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	WorkspaceName string `json:"workspace_name"`
}

// LoginRequest credenciales de login local.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token emitido más datos básicos del usuario.
type AuthResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	WorkspaceID string `json:"workspace_id,omitempty"` // workspace auto-provisionado en register
}
