package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/measurements"
)

type measurementsRepo struct {
	mu    sync.RWMutex
	items []measurements.Measurement
}

func NewMeasurementsRepo() measurements.Repository {
	return &measurementsRepo{}
}

func (r *measurementsRepo) Create(ctx context.Context, m measurements.Measurement) (measurements.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = newID()
	r.items = append(r.items, m)
	return m, nil
}

func (r *measurementsRepo) List(ctx context.Context, skip, limit int) ([]measurements.Measurement, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]measurements.Measurement, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *measurementsRepo) GetByID(ctx context.Context, id string) (measurements.Measurement, error) {
	if !validID(id) {
		return measurements.Measurement{}, measurements.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return measurements.Measurement{}, measurements.ErrNotFound
}

func (r *measurementsRepo) Update(ctx context.Context, id string, in measurements.UpdateInput) (measurements.Measurement, error) {
	if !validID(id) {
		return measurements.Measurement{}, measurements.ErrInvalidID
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
		if in.Movimiento != nil {
			it.Movimiento = *in.Movimiento
		}
		if in.UbicacionLat != nil {
			it.UbicacionLat = *in.UbicacionLat
		}
		if in.UbicacionLng != nil {
			it.UbicacionLng = *in.UbicacionLng
		}
		if in.EstadoCollar != nil {
			it.EstadoCollar = *in.EstadoCollar
		}
		if in.EstadoBroche != nil {
			it.EstadoBroche = *in.EstadoBroche
		}
		if in.Bateria != nil {
			it.Bateria = *in.Bateria
		}

		r.items[i] = it
		return it, nil
	}
	return measurements.Measurement{}, measurements.ErrNotFound
}

func (r *measurementsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return measurements.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return measurements.ErrNotFound
}
