package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/roles"
)

type rolesRepo struct {
	mu    sync.RWMutex
	items []roles.Role // orden de inserción
}

func NewRolesRepo() roles.Repository {
	return &rolesRepo{}
}

func (r *rolesRepo) Create(ctx context.Context, rol roles.Role) (roles.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Nombre == rol.Nombre {
			return roles.Role{}, roles.ErrDuplicateName
		}
	}

	rol.ID = newID()
	r.items = append(r.items, rol)
	return rol, nil
}

func (r *rolesRepo) List(ctx context.Context, skip, limit int) ([]roles.Role, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roles.Role, 0, limit)
	// más recientes primero
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *rolesRepo) GetByID(ctx context.Context, id string) (roles.Role, error) {
	if !validID(id) {
		return roles.Role{}, roles.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return roles.Role{}, roles.ErrNotFound
}

func (r *rolesRepo) GetByName(ctx context.Context, nombre string) (roles.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.Nombre == nombre {
			return it, nil
		}
	}
	return roles.Role{}, roles.ErrNotFound
}

func (r *rolesRepo) Update(ctx context.Context, id string, in roles.UpdateInput) (roles.Role, error) {
	if !validID(id) {
		return roles.Role{}, roles.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID != id {
			continue
		}

		if in.Nombre != nil {
			for _, other := range r.items {
				if other.ID != id && other.Nombre == *in.Nombre {
					return roles.Role{}, roles.ErrDuplicateName
				}
			}
			it.Nombre = *in.Nombre
		}
		if in.Descripcion != nil {
			it.Descripcion = *in.Descripcion
		}
		if in.Nivel != nil {
			it.Nivel = *in.Nivel
		}

		r.items[i] = it
		return it, nil
	}
	return roles.Role{}, roles.ErrNotFound
}

func (r *rolesRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return roles.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return roles.ErrNotFound
}
