package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/pets"
)

type petsRepo struct {
	mu    sync.RWMutex
	items []pets.Pet
}

func NewPetsRepo() pets.Repository {
	return &petsRepo{}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Serial == p.Serial {
			return pets.Pet{}, pets.ErrDuplicateSerial
		}
	}

	p.ID = newID()
	r.items = append(r.items, p)
	return p, nil
}

func (r *petsRepo) List(ctx context.Context, skip, limit int) ([]pets.Pet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	if !validID(id) {
		return pets.Pet{}, pets.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *petsRepo) Update(ctx context.Context, id string, in pets.UpdateInput) (pets.Pet, error) {
	if !validID(id) {
		return pets.Pet{}, pets.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID != id {
			continue
		}

		if in.Serial != nil {
			for _, other := range r.items {
				if other.ID != id && other.Serial == *in.Serial {
					return pets.Pet{}, pets.ErrDuplicateSerial
				}
			}
			it.Serial = *in.Serial
		}
		if in.NombreMascota != nil {
			it.NombreMascota = *in.NombreMascota
		}
		if in.RazaPerro != nil {
			it.RazaPerro = *in.RazaPerro
		}
		if in.EdadPerro != nil {
			it.EdadPerro = *in.EdadPerro
		}

		r.items[i] = it
		return it, nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pets.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return pets.ErrNotFound
}
