package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/usertypes"
)

type userTypesRepo struct {
	mu    sync.RWMutex
	items []usertypes.UserType
}

func NewUserTypesRepo() usertypes.Repository {
	return &userTypesRepo{}
}

func (r *userTypesRepo) Create(ctx context.Context, t usertypes.UserType) (usertypes.UserType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Nombre == t.Nombre {
			return usertypes.UserType{}, usertypes.ErrDuplicateName
		}
	}

	t.ID = newID()
	r.items = append(r.items, t)
	return t, nil
}

func (r *userTypesRepo) List(ctx context.Context, skip, limit int) ([]usertypes.UserType, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]usertypes.UserType, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *userTypesRepo) GetByID(ctx context.Context, id string) (usertypes.UserType, error) {
	if !validID(id) {
		return usertypes.UserType{}, usertypes.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return usertypes.UserType{}, usertypes.ErrNotFound
}

func (r *userTypesRepo) Update(ctx context.Context, id string, in usertypes.UpdateInput) (usertypes.UserType, error) {
	if !validID(id) {
		return usertypes.UserType{}, usertypes.ErrInvalidID
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
					return usertypes.UserType{}, usertypes.ErrDuplicateName
				}
			}
			it.Nombre = *in.Nombre
		}
		if in.Descripcion != nil {
			it.Descripcion = *in.Descripcion
		}

		r.items[i] = it
		return it, nil
	}
	return usertypes.UserType{}, usertypes.ErrNotFound
}

func (r *userTypesRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return usertypes.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return usertypes.ErrNotFound
}
