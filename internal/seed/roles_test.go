package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "petlink-api/internal/adapters/storage/memory"
	"petlink-api/internal/domain/roles"
	"petlink-api/internal/seed"
)

func TestRoles_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewRolesRepo()

	// Dos pasadas: la segunda no debe duplicar ni fallar
	require.NoError(t, seed.Roles(ctx, repo, zerolog.Nop()))
	require.NoError(t, seed.Roles(ctx, repo, zerolog.Nop()))

	items, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	niveles := map[string]int{}
	for _, r := range items {
		niveles[r.Nombre] = r.Nivel
	}
	assert.Equal(t, map[string]int{
		"admin":     4,
		"dueño":     3,
		"guarderia": 2,
		"cuidador":  1,
	}, niveles)
}

func TestRoles_DoesNotOverwriteExisting(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewRolesRepo()

	require.NoError(t, seed.Roles(ctx, repo, zerolog.Nop()))

	admin, err := repo.GetByName(ctx, "admin")
	require.NoError(t, err)

	desc := "descripción editada por un operador"
	_, err = repo.Update(ctx, admin.ID, roles.UpdateInput{Descripcion: &desc})
	require.NoError(t, err)

	require.NoError(t, seed.Roles(ctx, repo, zerolog.Nop()))

	admin, err = repo.GetByName(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, desc, admin.Descripcion)
}
