package pets

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Serial        string
	NombreMascota string
	RazaPerro     string
	EdadPerro     int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Serial) == "" || strings.TrimSpace(in.NombreMascota) == "" {
		return Pet{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, Pet{
		Serial:        strings.TrimSpace(in.Serial),
		NombreMascota: strings.TrimSpace(in.NombreMascota),
		RazaPerro:     in.RazaPerro,
		EdadPerro:     in.EdadPerro,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Pet, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	if in.Serial != nil && strings.TrimSpace(*in.Serial) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.NombreMascota != nil && strings.TrimSpace(*in.NombreMascota) == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
