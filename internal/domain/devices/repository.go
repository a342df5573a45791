package devices

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("dispositivo no encontrado")
	ErrInvalidID       = errors.New("id inválido")
	ErrDuplicateSerial = errors.New("serial de dispositivo duplicado")
)

type UpdateInput struct {
	Serial        *string
	Estado        *string
	FechaRegistro *time.Time
}

type Repository interface {
	Create(ctx context.Context, d Device) (Device, error)
	List(ctx context.Context, skip, limit int) ([]Device, int64, error)
	GetByID(ctx context.Context, id string) (Device, error)
	GetBySerial(ctx context.Context, serial string) (Device, error)
	Update(ctx context.Context, id string, in UpdateInput) (Device, error)
	Delete(ctx context.Context, id string) error
}
