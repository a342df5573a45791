package usertypes

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("tipo de usuario no encontrado")
	ErrInvalidID     = errors.New("id inválido")
	ErrDuplicateName = errors.New("nombre de tipo de usuario duplicado")
)

type UpdateInput struct {
	Nombre      *string
	Descripcion *string
}

type Repository interface {
	Create(ctx context.Context, t UserType) (UserType, error)
	List(ctx context.Context, skip, limit int) ([]UserType, int64, error)
	GetByID(ctx context.Context, id string) (UserType, error)
	Update(ctx context.Context, id string, in UpdateInput) (UserType, error)
	Delete(ctx context.Context, id string) error
}
