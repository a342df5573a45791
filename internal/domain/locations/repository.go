package locations

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("registro de ubicación no encontrado")
	ErrInvalidID = errors.New("id inválido")
)

type UpdateInput struct {
	DispositivoID *string
	Fecha         *time.Time
	Latitud       *float64
	Longitud      *float64
}

type Repository interface {
	Create(ctx context.Context, l LocationRecord) (LocationRecord, error)
	List(ctx context.Context, skip, limit int) ([]LocationRecord, int64, error)
	GetByID(ctx context.Context, id string) (LocationRecord, error)
	Update(ctx context.Context, id string, in UpdateInput) (LocationRecord, error)
	Delete(ctx context.Context, id string) error
}
