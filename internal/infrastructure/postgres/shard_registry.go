package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/metrics"
)

var _ repository.ShardAssigner = (*ShardRegistry)(nil)

// Shard un nodo PostgreSQL de la topología, identificado por su índice.
type Shard struct {
	Index int
	Pool  *pgxpool.Pool
}

// ShardRegistry mantiene la topología de shards y el mapa workspace→shard.
// La topología se inyecta en la construcción (nunca un singleton de proceso) y
// es fija durante la vida del proceso; el mapa de asignaciones se respalda en
// la tabla workspace_shards del shard primario y se calienta al boot con
// LoadAssignments.
//
// Invariante: una asignación nunca cambia una vez escrita. Mover un workspace
// de shard requiere migración de datos fuera de banda, no una reasignación.
type ShardRegistry struct {
	shards  []*Shard // orden ascendente por índice
	primary *Shard

	// lookup resuelve un miss del mapa contra workspace_shards. Campo para
	// poder stubearlo en tests; en producción es lookupAssignment.
	lookup func(ctx context.Context, workspaceID string) (int, bool)

	mu     sync.RWMutex
	assign map[string]int
}

// NewShardRegistry construye el registro con la topología dada. El shard
// primario (índice 0) aloja workspaces, memberships, invitaciones, usuarios y
// la tabla de asignaciones.
func NewShardRegistry(shards []*Shard) (*ShardRegistry, error) {
	if len(shards) == 0 {
		return nil, fmt.Errorf("shard registry: se requiere al menos un shard")
	}
	for i, s := range shards {
		if s.Index != i {
			return nil, fmt.Errorf("shard registry: índice %d en posición %d, la topología debe ser ascendente y densa", s.Index, i)
		}
	}
	r := &ShardRegistry{
		shards:  shards,
		primary: shards[0],
		assign:  make(map[string]int),
	}
	r.lookup = r.lookupAssignment
	return r, nil
}

// Primary devuelve el shard primario.
func (r *ShardRegistry) Primary() *Shard {
	return r.primary
}

// Shards devuelve la topología en orden ascendente por índice.
func (r *ShardRegistry) Shards() []*Shard {
	return r.shards
}

// LoadAssignments calienta el mapa en memoria desde workspace_shards. Se llama
// una vez al boot, antes de aceptar tráfico.
func (r *ShardRegistry) LoadAssignments(ctx context.Context) error {
	rows, err := r.primary.Pool.Query(ctx, `SELECT workspace_id, shard_index FROM workspace_shards`)
	if err != nil {
		return fmt.Errorf("load shard assignments: %w", err)
	}
	defer rows.Close()

	loaded := make(map[string]int)
	for rows.Next() {
		var wsID string
		var idx int
		if err := rows.Scan(&wsID, &idx); err != nil {
			return fmt.Errorf("scan shard assignment: %w", err)
		}
		loaded[wsID] = idx
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load shard assignments: %w", err)
	}

	r.mu.Lock()
	r.assign = loaded
	r.mu.Unlock()
	return nil
}

// Assign elige el shard para un workspace nuevo (FNV-1a del ID módulo la
// cantidad de shards), persiste la fila en el primario y la publica en el mapa.
// Un segundo Assign para el mismo workspace devuelve domain.ErrShardAssigned:
// las asignaciones son inmutables.
func (r *ShardRegistry) Assign(ctx context.Context, workspaceID string) (int, error) {
	r.mu.RLock()
	_, exists := r.assign[workspaceID]
	r.mu.RUnlock()
	if exists {
		return 0, domain.ErrShardAssigned
	}

	idx := r.pick(workspaceID)
	tag, err := r.primary.Pool.Exec(ctx,
		`INSERT INTO workspace_shards (workspace_id, shard_index) VALUES ($1, $2)
		 ON CONFLICT (workspace_id) DO NOTHING`,
		workspaceID, idx,
	)
	if err != nil {
		return 0, fmt.Errorf("assign shard ws=%s: %w", workspaceID, err)
	}
	if tag.RowsAffected() == 0 {
		// Otro proceso ganó la carrera de inserción.
		return 0, domain.ErrShardAssigned
	}

	r.mu.Lock()
	r.assign[workspaceID] = idx
	r.mu.Unlock()
	return idx, nil
}

// Resolve devuelve el shard dueño del workspace. El mapa en memoria es un
// cache: ante un miss se consulta workspace_shards en el primario antes de
// degradar (otra instancia pudo escribir la asignación después de nuestro
// boot, y enrutar esas escrituras al primario rompería la pertenencia
// física de las filas). Solo un workspace genuinamente sin fila cae al
// primario; Resolve nunca falla.
func (r *ShardRegistry) Resolve(ctx context.Context, workspaceID string) *Shard {
	r.mu.RLock()
	idx, ok := r.assign[workspaceID]
	r.mu.RUnlock()
	if ok && idx >= 0 && idx < len(r.shards) {
		return r.shards[idx]
	}

	idx, ok = r.lookup(ctx, workspaceID)
	if !ok || idx < 0 || idx >= len(r.shards) {
		return r.primary
	}
	r.mu.Lock()
	r.assign[workspaceID] = idx
	r.mu.Unlock()
	return r.shards[idx]
}

// lookupAssignment busca la asignación en la tabla del primario. Devuelve
// false tanto para fila ausente como para error de consulta: Resolve no
// falla, y con el primario caído la query del caller fallará con su propio
// error de todos modos.
func (r *ShardRegistry) lookupAssignment(ctx context.Context, workspaceID string) (int, bool) {
	var idx int
	err := r.primary.Pool.QueryRow(ctx,
		`SELECT shard_index FROM workspace_shards WHERE workspace_id = $1`,
		workspaceID,
	).Scan(&idx)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// FindAcrossShards recorre los shards en orden ascendente por índice aplicando
// scan en cada uno; el primer shard donde scan devuelve true gana. Un error de
// scan corta el recorrido y se propaga como shard no disponible; si ningún
// shard tiene el dato se devuelve domain.ErrNotFound.
//
// El orden determinista hace el resultado reproducible ante duplicados
// anómalos entre shards.
func (r *ShardRegistry) FindAcrossShards(ctx context.Context, scan func(ctx context.Context, s *Shard) (bool, error)) (*Shard, error) {
	for _, s := range r.shards {
		found, err := scan(ctx, s)
		if err != nil {
			metrics.ShardFanout("error")
			return nil, fmt.Errorf("%w: shard %d: %v", domain.ErrShardUnavailable, s.Index, err)
		}
		if found {
			metrics.ShardFanout("found")
			return s, nil
		}
	}
	metrics.ShardFanout("not_found")
	return nil, domain.ErrNotFound
}

func (r *ShardRegistry) pick(workspaceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(workspaceID))
	return int(h.Sum32() % uint32(len(r.shards)))
}
