package roles

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("rol no encontrado")
	ErrInvalidID     = errors.New("id inválido")
	ErrDuplicateName = errors.New("nombre de rol duplicado")
)

// UpdateInput son los campos a fusionar en una actualización.
// nil = no tocar ese campo.
type UpdateInput struct {
	Nombre      *string
	Descripcion *string
	Nivel       *int
}

type Repository interface {
	Create(ctx context.Context, r Role) (Role, error)
	List(ctx context.Context, skip, limit int) ([]Role, int64, error)
	GetByID(ctx context.Context, id string) (Role, error)
	GetByName(ctx context.Context, nombre string) (Role, error)
	Update(ctx context.Context, id string, in UpdateInput) (Role, error)
	Delete(ctx context.Context, id string) error
}
