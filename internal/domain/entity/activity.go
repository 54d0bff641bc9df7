package entity

import "time"

// Activity entrada del historial de actividad del workspace. Shard-local.
// Se escribe de forma asíncrona desde el bus de eventos post-commit; su
// escritura puede fallar sin afectar la mutación que la originó (se loggea y
// se descarta). La lectura se recorta a la retención en días del plan.
type Activity struct {
	ID          string
	WorkspaceID string
	ActorID     string
	Action      string // created, updated, deleted, joined...
	EntityKind  string // project, task, board...
	EntityID    string
	Detail      string
	CreatedAt   time.Time
}

// Notification aviso dirigido a un usuario, generado por el mismo bus.
type Notification struct {
	ID          string
	WorkspaceID string
	UserID      string
	Kind        string
	Title       string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}
