package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("mascota no encontrada")
	ErrInvalidID       = errors.New("id inválido")
	ErrDuplicateSerial = errors.New("serial de mascota duplicado")
)

type UpdateInput struct {
	Serial        *string
	NombreMascota *string
	RazaPerro     *string
	EdadPerro     *int
}

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	List(ctx context.Context, skip, limit int) ([]Pet, int64, error)
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, id string, in UpdateInput) (Pet, error)
	Delete(ctx context.Context, id string) error
}
