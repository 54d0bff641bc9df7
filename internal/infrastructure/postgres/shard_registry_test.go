package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/infrastructure/postgres"
)

// topología de prueba: tres shards sin pool (el fan-out se ejercita con
// closures de scan, nunca toca la base).
func threeShards(t *testing.T) *postgres.ShardRegistry {
	t.Helper()
	reg, err := postgres.NewShardRegistry([]*postgres.Shard{
		{Index: 0}, {Index: 1}, {Index: 2},
	})
	require.NoError(t, err)
	return reg
}

func TestNewShardRegistry_TopologiaVacia(t *testing.T) {
	_, err := postgres.NewShardRegistry(nil)
	assert.Error(t, err)
}

func TestNewShardRegistry_IndicesDebenSerDensosYAscendentes(t *testing.T) {
	_, err := postgres.NewShardRegistry([]*postgres.Shard{
		{Index: 0}, {Index: 2},
	})
	assert.Error(t, err, "un hueco en los índices es una topología inválida")
}

func TestPrimary_EsElIndiceCero(t *testing.T) {
	reg := threeShards(t)
	assert.Equal(t, 0, reg.Primary().Index)
	assert.Len(t, reg.Shards(), 3)
}

// Un workspace sin asignación conocida cae al primario: Resolve nunca falla.
func TestFindAcrossShards_PrimerHitGana(t *testing.T) {
	reg := threeShards(t)

	var visited []int
	s, err := reg.FindAcrossShards(context.Background(), func(_ context.Context, s *postgres.Shard) (bool, error) {
		visited = append(visited, s.Index)
		return s.Index == 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, []int{0, 1, 2}, visited, "el recorrido es ascendente y determinista")
}

func TestFindAcrossShards_HitTempranoCortaElRecorrido(t *testing.T) {
	reg := threeShards(t)

	var visited []int
	s, err := reg.FindAcrossShards(context.Background(), func(_ context.Context, s *postgres.Shard) (bool, error) {
		visited = append(visited, s.Index)
		return s.Index == 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, []int{0}, visited, "después del hit no se visitan más shards")
}

func TestFindAcrossShards_SinHitEsNotFound(t *testing.T) {
	reg := threeShards(t)

	_, err := reg.FindAcrossShards(context.Background(), func(_ context.Context, _ *postgres.Shard) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un error de scan corta el recorrido: "no está en los shards que respondieron"
// jamás se confunde con "no existe".
func TestFindAcrossShards_ErrorDeShardSePropaga(t *testing.T) {
	reg := threeShards(t)

	var visited []int
	_, err := reg.FindAcrossShards(context.Background(), func(_ context.Context, s *postgres.Shard) (bool, error) {
		visited = append(visited, s.Index)
		if s.Index == 1 {
			return false, errors.New("conexión rechazada")
		}
		return false, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrShardUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []int{0, 1}, visited, "el shard 2 nunca se consulta tras el fallo")
	assert.Contains(t, err.Error(), "shard 1")
}
