package seed

import (
	"context"
	"errors"

	"petlink-api/internal/domain/roles"

	"github.com/rs/zerolog"
)

// defaultRoles son los roles fijos de la plataforma.
func defaultRoles() []roles.Role {
	return []roles.Role{
		{Nombre: "admin", Descripcion: "Administrador del sistema", Nivel: 4},
		{Nombre: "dueño", Descripcion: "Dueño de la mascota", Nivel: 3},
		{Nombre: "guarderia", Descripcion: "Guardería de mascotas", Nivel: 2},
		{Nombre: "cuidador", Descripcion: "Cuidador individual", Nivel: 1},
	}
}

// Roles asegura que existan los cuatro roles base. Se ejecuta en el arranque,
// después de abrir la conexión. Es idempotente: busca por nombre e inserta
// solo si falta; nunca pisa los atributos de un rol existente.
func Roles(ctx context.Context, repo roles.Repository, log zerolog.Logger) error {
	for _, rol := range defaultRoles() {
		_, err := repo.GetByName(ctx, rol.Nombre)
		if err == nil {
			continue
		}
		if !errors.Is(err, roles.ErrNotFound) {
			return err
		}

		if _, err := repo.Create(ctx, rol); err != nil {
			// Otro proceso pudo ganar la carrera; el índice único ya
			// garantiza un solo documento por nombre.
			if errors.Is(err, roles.ErrDuplicateName) {
				continue
			}
			return err
		}

		log.Info().Str("rol", rol.Nombre).Int("nivel", rol.Nivel).Msg("rol inicial creado")
	}

	return nil
}
