package measurements

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
	Movimiento    bool
	UbicacionLat  float64
	UbicacionLng  float64
	EstadoCollar  bool
	EstadoBroche  bool
	Bateria       float64
}

// Create es la ruta de la API administrativa: dispositivo y fecha obligatorios.
func (s *Service) Create(ctx context.Context, in CreateInput) (Measurement, error) {
	if strings.TrimSpace(in.DispositivoID) == "" || in.Fecha == nil {
		return Measurement{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, s.build(in, *in.Fecha))
}

// Ingest es la ruta de telemetría del collar: el dispositivo ya viene
// resuelto por serial y la fecha cae a "ahora" si el equipo no la manda.
func (s *Service) Ingest(ctx context.Context, deviceID string, in CreateInput) (Measurement, error) {
	if strings.TrimSpace(deviceID) == "" {
		return Measurement{}, ErrInvalidInput
	}
	in.DispositivoID = deviceID

	fecha := s.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	return s.repo.Create(ctx, s.build(in, fecha))
}

func (s *Service) build(in CreateInput, fecha time.Time) Measurement {
	return Measurement{
		DispositivoID: strings.TrimSpace(in.DispositivoID),
		Fecha:         fecha,
		Movimiento:    in.Movimiento,
		UbicacionLat:  in.UbicacionLat,
		UbicacionLng:  in.UbicacionLng,
		EstadoCollar:  in.EstadoCollar,
		EstadoBroche:  in.EstadoBroche,
		Bateria:       in.Bateria,
	}
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Measurement, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (Measurement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Measurement, error) {
	if in.DispositivoID != nil && strings.TrimSpace(*in.DispositivoID) == "" {
		return Measurement{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
