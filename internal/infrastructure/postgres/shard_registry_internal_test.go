package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryWithLookup(t *testing.T, lookup func(ctx context.Context, workspaceID string) (int, bool)) *ShardRegistry {
	t.Helper()
	reg, err := NewShardRegistry([]*Shard{
		{Index: 0}, {Index: 1}, {Index: 2},
	})
	require.NoError(t, err)
	reg.lookup = lookup
	return reg
}

func TestResolve_AsignacionCacheadaNoConsultaLaTabla(t *testing.T) {
	llamadas := 0
	reg := registryWithLookup(t, func(_ context.Context, _ string) (int, bool) {
		llamadas++
		return 0, false
	})
	reg.assign["ws-1"] = 2

	s := reg.Resolve(context.Background(), "ws-1")
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, 0, llamadas)
}

func TestResolve_MissConsultaLaTablaYCachea(t *testing.T) {
	llamadas := 0
	reg := registryWithLookup(t, func(_ context.Context, workspaceID string) (int, bool) {
		llamadas++
		assert.Equal(t, "ws-tardio", workspaceID)
		return 1, true
	})

	s := reg.Resolve(context.Background(), "ws-tardio")
	assert.Equal(t, 1, s.Index)

	// La segunda resolución sale del mapa, no de la tabla.
	s = reg.Resolve(context.Background(), "ws-tardio")
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 1, llamadas)
}

func TestResolve_SinFilaEnLaTablaCaeAlPrimario(t *testing.T) {
	reg := registryWithLookup(t, func(_ context.Context, _ string) (int, bool) {
		return 0, false
	})

	s := reg.Resolve(context.Background(), "ws-desconocido")
	assert.Equal(t, 0, s.Index)

	// El fallback no se cachea: una asignación que aparezca después se encuentra.
	_, cached := reg.assign["ws-desconocido"]
	assert.False(t, cached)
}

func TestResolve_IndiceFueraDeRangoCaeAlPrimario(t *testing.T) {
	reg := registryWithLookup(t, func(_ context.Context, _ string) (int, bool) {
		return 9, true
	})

	s := reg.Resolve(context.Background(), "ws-raro")
	assert.Equal(t, 0, s.Index)
}
