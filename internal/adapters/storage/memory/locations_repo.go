package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/locations"
)

type locationsRepo struct {
	mu    sync.RWMutex
	items []locations.LocationRecord
}

func NewLocationsRepo() locations.Repository {
	return &locationsRepo{}
}

func (r *locationsRepo) Create(ctx context.Context, l locations.LocationRecord) (locations.LocationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l.ID = newID()
	r.items = append(r.items, l)
	return l, nil
}

func (r *locationsRepo) List(ctx context.Context, skip, limit int) ([]locations.LocationRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]locations.LocationRecord, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *locationsRepo) GetByID(ctx context.Context, id string) (locations.LocationRecord, error) {
	if !validID(id) {
		return locations.LocationRecord{}, locations.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return locations.LocationRecord{}, locations.ErrNotFound
}

func (r *locationsRepo) Update(ctx context.Context, id string, in locations.UpdateInput) (locations.LocationRecord, error) {
	if !validID(id) {
		return locations.LocationRecord{}, locations.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID != id {
			continue
		}

		if in.DispositivoID != nil {
			it.DispositivoID = *in.DispositivoID
		}
		if in.Fecha != nil {
			it.Fecha = *in.Fecha
		}
		if in.Latitud != nil {
			it.Latitud = *in.Latitud
		}
		if in.Longitud != nil {
			it.Longitud = *in.Longitud
		}

		r.items[i] = it
		return it, nil
	}
	return locations.LocationRecord{}, locations.ErrNotFound
}

func (r *locationsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return locations.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return locations.ErrNotFound
}
