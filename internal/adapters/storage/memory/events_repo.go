package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/events"
)

type eventsRepo struct {
	mu    sync.RWMutex
	items []events.Event
}

func NewEventsRepo() events.Repository {
	return &eventsRepo{}
}

func (r *eventsRepo) Create(ctx context.Context, e events.Event) (events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = newID()
	r.items = append(r.items, e)
	return e, nil
}

func (r *eventsRepo) List(ctx context.Context, skip, limit int) ([]events.Event, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	if !validID(id) {
		return events.Event{}, events.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return events.Event{}, events.ErrNotFound
}

func (r *eventsRepo) Update(ctx context.Context, id string, in events.UpdateInput) (events.Event, error) {
	if !validID(id) {
		return events.Event{}, events.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID != id {
			continue
		}

		if in.UsuarioID != nil {
			it.UsuarioID = *in.UsuarioID
		}
		if in.DispositivoID != nil {
			it.DispositivoID = *in.DispositivoID
		}
		if in.Fecha != nil {
			it.Fecha = *in.Fecha
		}
		if in.Hora != nil {
			it.Hora = *in.Hora
		}
		if in.TipoEvento != nil {
			it.TipoEvento = *in.TipoEvento
		}
		if in.Descripcion != nil {
			it.Descripcion = *in.Descripcion
		}
		if in.Estado != nil {
			it.Estado = *in.Estado
		}

		r.items[i] = it
		return it, nil
	}
	return events.Event{}, events.ErrNotFound
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return events.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return events.ErrNotFound
}
