package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/users"
)

type usersRepo struct {
	mu    sync.RWMutex
	items []users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = newID()
	r.items = append(r.items, u)
	return u, nil
}

func (r *usersRepo) List(ctx context.Context, skip, limit int) ([]users.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	if !validID(id) {
		return users.User{}, users.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *usersRepo) Update(ctx context.Context, id string, in users.UpdateInput) (users.User, error) {
	if !validID(id) {
		return users.User{}, users.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID != id {
			continue
		}

		if in.RolID != nil {
			it.RolID = *in.RolID
		}
		if in.Nombre != nil {
			it.Nombre = *in.Nombre
		}
		if in.NumeroContacto != nil {
			it.NumeroContacto = *in.NumeroContacto
		}
		if in.Contrasena != nil {
			it.Contrasena = *in.Contrasena
		}
		if in.Correo != nil {
			it.Correo = *in.Correo
		}
		if in.FechaRegistro != nil {
			it.FechaRegistro = *in.FechaRegistro
		}

		r.items[i] = it
		return it, nil
	}
	return users.User{}, users.ErrNotFound
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return users.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return users.ErrNotFound
}
