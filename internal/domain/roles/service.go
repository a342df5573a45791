package roles

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
	Nombre      string
	Descripcion string
	Nivel       int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Role, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return Role{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, Role{
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: in.Descripcion,
		Nivel:       in.Nivel,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Role, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Role, error) {
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		return Role{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
