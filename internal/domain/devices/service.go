package devices

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Serial        string
	Estado        string
	FechaRegistro *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Device, error) {
	if strings.TrimSpace(in.Serial) == "" {
		return Device{}, ErrInvalidInput
	}

	fecha := s.now()
	if in.FechaRegistro != nil {
		fecha = *in.FechaRegistro
	}

	return s.repo.Create(ctx, Device{
		Serial:        strings.TrimSpace(in.Serial),
		Estado:        in.Estado,
		FechaRegistro: fecha,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Device, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (Device, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySerial resuelve el dispositivo que un collar reporta en cada llamada.
func (s *Service) GetBySerial(ctx context.Context, serial string) (Device, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return Device{}, ErrNotFound
	}
	return s.repo.GetBySerial(ctx, serial)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Device, error) {
	if in.Serial != nil && strings.TrimSpace(*in.Serial) == "" {
		return Device{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
