package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// AccessDenied / NotFound / QuotaExceeded son resultados esperados devueltos
// como valores tipados; nunca se usan panics ni excepciones para control de flujo.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrShardUnavailable   = errors.New("shard no disponible")
	ErrShardAssigned      = errors.New("el workspace ya tiene shard asignado")
	ErrMalformedEvent     = errors.New("evento de billing con metadata incompleta")
	ErrInviteExpired      = errors.New("la invitación expiró")
	ErrInviteRevoked      = errors.New("la invitación fue revocada")
	ErrInviteUsed         = errors.New("la invitación ya fue aceptada")
)
