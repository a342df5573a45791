package users

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
	RolID          string
	Nombre         string
	NumeroContacto string
	Contrasena     string // texto plano, se cifra acá
	Correo         string
	FechaRegistro  *time.Time
}

// Create valida los obligatorios y cifra la contraseña antes de persistir.
// La ruta de alta siempre cifra; no hay dirty-tracking implícito.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	if strings.TrimSpace(in.Nombre) == "" ||
		strings.TrimSpace(in.Correo) == "" ||
		in.Contrasena == "" {
		return User{}, ErrInvalidInput
	}

	hash, err := HashPassword(in.Contrasena)
	if err != nil {
		return User{}, err
	}

	fecha := s.now()
	if in.FechaRegistro != nil {
		fecha = *in.FechaRegistro
	}

	return s.repo.Create(ctx, User{
		RolID:          strings.TrimSpace(in.RolID),
		Nombre:         strings.TrimSpace(in.Nombre),
		NumeroContacto: in.NumeroContacto,
		Contrasena:     hash,
		Correo:         strings.TrimSpace(in.Correo),
		FechaRegistro:  fecha,
	})
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]User, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update fusiona los campos provistos. Solo si viene una contraseña nueva
// se vuelve a cifrar; si no, el hash guardado queda intacto.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		return User{}, ErrInvalidInput
	}
	if in.Correo != nil && strings.TrimSpace(*in.Correo) == "" {
		return User{}, ErrInvalidInput
	}

	if in.Contrasena != nil {
		if *in.Contrasena == "" {
			return User{}, ErrInvalidInput
		}
		hash, err := HashPassword(*in.Contrasena)
		if err != nil {
			return User{}, err
		}
		in.Contrasena = &hash
	}

	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
