package quota

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

func TestLock_DescartaEntradasAlSoltar(t *testing.T) {
	l := NewLedger(nil)

	unlock := l.Lock("ws-1", plan.CategoryProjects)
	assert.Len(t, l.locks, 1)
	unlock()
	assert.Empty(t, l.locks, "sin holders no quedan entradas en el mapa")
}

func TestLock_NoDescartaConHoldersEnEspera(t *testing.T) {
	l := NewLedger(nil)

	first := l.Lock("ws-1", plan.CategoryTasks)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		unlock := l.Lock("ws-1", plan.CategoryTasks)
		unlock()
	}()

	// Esperar a que el segundo holder quede encolado sobre la misma entrada.
	for {
		l.mu.Lock()
		e, ok := l.locks[lockKey{workspaceID: "ws-1", category: plan.CategoryTasks}]
		refs := 0
		if ok {
			refs = e.refs
		}
		l.mu.Unlock()
		if refs == 2 {
			break
		}
		runtime.Gosched()
	}

	first()
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestLock_MapaAcotadoTrasMuchosPares(t *testing.T) {
	l := NewLedger(nil)

	for i := 0; i < 1000; i++ {
		unlock := l.Lock(string(rune('a'+i%26))+"-ws", plan.CategoryBoards)
		unlock()
	}
	assert.Empty(t, l.locks, "pares ya liberados no retienen memoria")
}
