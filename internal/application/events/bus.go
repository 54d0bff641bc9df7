package events

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/pkg/logger"
)

// Event hecho post-commit emitido por los casos de uso después de que una
// mutación confirmó. Los consumidores (historial de actividad, notificaciones,
// integraciones) corren de forma asíncrona: su falla no toca el resultado de
// la mutación que los originó.
type Event struct {
	Action      string // created, updated, deleted, joined...
	EntityKind  string // project, task, board, member...
	EntityID    string
	WorkspaceID string
	ActorID     string
	TargetUser  string // opcional: destinatario de una notificación
	Detail      string
	OccurredAt  time.Time
}

// Handler consumidor de eventos. Recibe el contexto del loop del bus, no el
// del request que publicó.
type Handler func(ctx context.Context, ev Event)

// Bus despachador en memoria con canal bufereado. Publish nunca bloquea: si el
// buffer está lleno el evento se descarta con un warn (los side effects son
// tolerantes a pérdida; las decisiones de shard/cuota/membership nunca pasan
// por acá).
type Bus struct {
	ch       chan Event
	handlers []Handler
	log      *logger.Logger
	done     chan struct{}
}

// NewBus crea el bus con el tamaño de buffer dado.
func NewBus(buffer int, log *logger.Logger) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bus{
		ch:   make(chan Event, buffer),
		log:  log,
		done: make(chan struct{}),
	}
}

// Subscribe registra un consumidor. Debe llamarse antes de Run.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish encola el evento sin bloquear. Devuelve false si fue descartado.
func (b *Bus) Publish(ev Event) bool {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	select {
	case b.ch <- ev:
		return true
	default:
		b.log.Warn().
			Str("action", ev.Action).
			Str("entity_kind", ev.EntityKind).
			Str("workspace_id", ev.WorkspaceID).
			Msg("bus de eventos lleno, evento descartado")
		return false
	}
}

// Run consume el canal hasta que el contexto se cancele. Al cancelar drena lo
// que quedó en el buffer antes de terminar: un evento aceptado por Publish no
// se pierde por un shutdown ordenado. Pensado para correr en una goroutine
// propia desde main.
func (b *Bus) Run(ctx context.Context) {
	defer close(b.done)
	for {
		// La cancelación se chequea primero: con el canal aún con eventos,
		// el select de abajo podría elegir cualquiera de las dos ramas.
		select {
		case <-ctx.Done():
			b.drain(ctx)
			return
		default:
		}
		select {
		case <-ctx.Done():
			b.drain(ctx)
			return
		case ev := <-b.ch:
			b.deliver(ctx, ev)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, ev Event) {
	for _, h := range b.handlers {
		h(ctx, ev)
	}
}

func (b *Bus) drain(ctx context.Context) {
	// Los handlers escriben a la base: el contexto ya cancelado del loop
	// abortaría esas escrituras, así que el drenaje corre sin cancelación.
	ctx = context.WithoutCancel(ctx)
	for {
		select {
		case ev := <-b.ch:
			b.deliver(ctx, ev)
		default:
			return
		}
	}
}

// Wait bloquea hasta que el loop de Run terminó (para shutdown ordenado).
func (b *Bus) Wait() {
	<-b.done
}
