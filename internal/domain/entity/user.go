package entity

import "time"

// User cuenta global (no pertenece a un workspace; vive en el shard primario).
// La autenticación de sesión la hace el proveedor de identidad externo; aquí
// solo se guarda lo necesario para login local y atribución de acciones.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
