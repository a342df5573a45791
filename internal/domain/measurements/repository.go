package measurements

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("medición no encontrada")
	ErrInvalidID = errors.New("id inválido")
)

type UpdateInput struct {
	DispositivoID *string
	Fecha         *time.Time
	Movimiento    *bool
	UbicacionLat  *float64
	UbicacionLng  *float64
	EstadoCollar  *bool
	EstadoBroche  *bool
	Bateria       *float64
}

type Repository interface {
	Create(ctx context.Context, m Measurement) (Measurement, error)
	List(ctx context.Context, skip, limit int) ([]Measurement, int64, error)
	GetByID(ctx context.Context, id string) (Measurement, error)
	Update(ctx context.Context, id string, in UpdateInput) (Measurement, error)
	Delete(ctx context.Context, id string) error
}
