package locations

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
	DispositivoID string
	Fecha         *time.Time
	Latitud       *float64
	Longitud      *float64
}

// Create exige dispositivo, latitud y longitud. Latitud/longitud 0 son
// coordenadas válidas; por eso llegan como punteros y no como zero values.
func (s *Service) Create(ctx context.Context, in CreateInput) (LocationRecord, error) {
	if strings.TrimSpace(in.DispositivoID) == "" || in.Latitud == nil || in.Longitud == nil {
		return LocationRecord{}, ErrInvalidInput
	}

	fecha := s.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}

	return s.repo.Create(ctx, LocationRecord{
		DispositivoID: strings.TrimSpace(in.DispositivoID),
		Fecha:         fecha,
		Latitud:       *in.Latitud,
		Longitud:      *in.Longitud,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]LocationRecord, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (LocationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (LocationRecord, error) {
	if in.DispositivoID != nil && strings.TrimSpace(*in.DispositivoID) == "" {
		return LocationRecord{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
