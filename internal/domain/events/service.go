package events

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
	UsuarioID     string
	DispositivoID string
	Fecha         *time.Time
	Hora          int
	TipoEvento    string
	Descripcion   string
	Estado        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Event, error) {
	if strings.TrimSpace(in.DispositivoID) == "" || strings.TrimSpace(in.TipoEvento) == "" {
		return Event{}, ErrInvalidInput
	}

	fecha := s.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}

	return s.repo.Create(ctx, Event{
		UsuarioID:     strings.TrimSpace(in.UsuarioID),
		DispositivoID: strings.TrimSpace(in.DispositivoID),
		Fecha:         fecha,
		Hora:          in.Hora,
		TipoEvento:    strings.TrimSpace(in.TipoEvento),
		Descripcion:   in.Descripcion,
		Estado:        in.Estado,
	})
}

// Report registra un evento emitido por el collar (ej: collar_abierto,
// movimiento_detectado, bajo_bateria). Queda siempre en estado "reportado".
func (s *Service) Report(ctx context.Context, deviceID, tipoEvento, descripcion string) (Event, error) {
	return s.Create(ctx, CreateInput{
		DispositivoID: deviceID,
		TipoEvento:    tipoEvento,
		Descripcion:   descripcion,
		Estado:        EstadoReportado,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Event, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Event, error) {
	if in.DispositivoID != nil && strings.TrimSpace(*in.DispositivoID) == "" {
		return Event{}, ErrInvalidInput
	}
	if in.TipoEvento != nil && strings.TrimSpace(*in.TipoEvento) == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
