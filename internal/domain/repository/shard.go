package repository

import "context"

// ShardAssigner puerto del registro de shards para la creación de workspaces.
// Assign elige el shard del workspace, persiste la asignación y la deja
// visible para Resolve. DEBE llamarse antes de crear cualquier entidad
// dependiente del workspace: el fallback del router al shard primario solo es
// seguro si ninguna entidad existe sin asignación registrada.
//
// La asignación es inmutable: un segundo Assign para el mismo workspace
// devuelve domain.ErrShardAssigned.
type ShardAssigner interface {
	Assign(ctx context.Context, workspaceID string) (int, error)
}
