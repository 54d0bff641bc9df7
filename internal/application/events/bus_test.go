package events_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

func TestBus_EntregaATodosLosConsumidores(t *testing.T) {
	bus := events.NewBus(8, logger.Nop())

	var mu sync.Mutex
	var gotA, gotB []string
	done := make(chan struct{}, 2)

	bus.Subscribe(func(_ context.Context, ev events.Event) {
		mu.Lock()
		gotA = append(gotA, ev.EntityID)
		mu.Unlock()
		done <- struct{}{}
	})
	bus.Subscribe(func(_ context.Context, ev events.Event) {
		mu.Lock()
		gotB = append(gotB, ev.EntityID)
		mu.Unlock()
		done <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)

	ok := bus.Publish(events.Event{Action: "created", EntityKind: "project", EntityID: "p-1", WorkspaceID: "ws-1"})
	assert.True(t, ok)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("los consumidores no recibieron el evento a tiempo")
		}
	}
	cancel()
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"p-1"}, gotA)
	assert.Equal(t, []string{"p-1"}, gotB)
}

// Publish nunca bloquea: con el buffer lleno y sin consumidor corriendo, el
// evento se descarta y se reporta con false.
func TestBus_BufferLlenoDescartaSinBloquear(t *testing.T) {
	bus := events.NewBus(2, logger.Nop())
	// Sin Run: nada drena el canal.

	assert.True(t, bus.Publish(events.Event{EntityID: "e-1"}))
	assert.True(t, bus.Publish(events.Event{EntityID: "e-2"}))

	start := time.Now()
	ok := bus.Publish(events.Event{EntityID: "e-3"})
	assert.False(t, ok, "el tercer evento no entra en un buffer de 2")
	assert.Less(t, time.Since(start), 100*time.Millisecond, "el drop debe ser inmediato")
}

func TestBus_PublishCompletaOccurredAt(t *testing.T) {
	bus := events.NewBus(4, logger.Nop())

	received := make(chan events.Event, 1)
	bus.Subscribe(func(_ context.Context, ev events.Event) {
		received <- ev
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	require.True(t, bus.Publish(events.Event{Action: "created", EntityKind: "task", EntityID: "t-1"}))

	select {
	case ev := <-received:
		assert.False(t, ev.OccurredAt.IsZero(), "OccurredAt se completa al publicar")
	case <-time.After(2 * time.Second):
		t.Fatal("el evento no llegó")
	}
}

// Un shutdown ordenado no pierde eventos ya aceptados: Run drena el buffer
// al cancelarse antes de terminar.
func TestBus_ShutdownDrenaElBuffer(t *testing.T) {
	bus := events.NewBus(8, logger.Nop())

	var mu sync.Mutex
	var got []string
	bus.Subscribe(func(ctx context.Context, ev events.Event) {
		assert.NoError(t, ctx.Err(), "el drenaje corre sin cancelación")
		mu.Lock()
		got = append(got, ev.EntityID)
		mu.Unlock()
	})

	for _, id := range []string{"e-1", "e-2", "e-3", "e-4"} {
		require.True(t, bus.Publish(events.Event{Action: "created", EntityKind: "task", EntityID: id}))
	}

	// El contexto ya llega cancelado: todo lo encolado se entrega igual.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	go bus.Run(ctx)
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"e-1", "e-2", "e-3", "e-4"}, got)
}
