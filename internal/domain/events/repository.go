package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("evento no encontrado")
	ErrInvalidID = errors.New("id inválido")
)

type UpdateInput struct {
	UsuarioID     *string
	DispositivoID *string
	Fecha         *time.Time
	Hora          *int
	TipoEvento    *string
	Descripcion   *string
	Estado        *string
}

type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	List(ctx context.Context, skip, limit int) ([]Event, int64, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, id string, in UpdateInput) (Event, error)
	Delete(ctx context.Context, id string) error
}
