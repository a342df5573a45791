package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("usuario no encontrado")
	ErrInvalidID = errors.New("id inválido")
)

type UpdateInput struct {
	RolID          *string
	Nombre         *string
	NumeroContacto *string
	Contrasena     *string // ya cifrada por el servicio
	Correo         *string
	FechaRegistro  *time.Time
}

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	List(ctx context.Context, skip, limit int) ([]User, int64, error)
	GetByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, id string, in UpdateInput) (User, error)
	Delete(ctx context.Context, id string) error
}
