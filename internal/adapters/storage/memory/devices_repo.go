package memory

import (
	"context"
	"sync"

	"petlink-api/internal/domain/devices"
)

type devicesRepo struct {
	mu    sync.RWMutex
	items []devices.Device
}

func NewDevicesRepo() devices.Repository {
	return &devicesRepo{}
}

func (r *devicesRepo) Create(ctx context.Context, d devices.Device) (devices.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Serial == d.Serial {
			return devices.Device{}, devices.ErrDuplicateSerial
		}
	}

	d.ID = newID()
	r.items = append(r.items, d)
	return d, nil
}

func (r *devicesRepo) List(ctx context.Context, skip, limit int) ([]devices.Device, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]devices.Device, 0, limit)
	for i := len(r.items) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, int64(len(r.items)), nil
}

func (r *devicesRepo) GetByID(ctx context.Context, id string) (devices.Device, error) {
	if !validID(id) {
		return devices.Device{}, devices.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return devices.Device{}, devices.ErrNotFound
}

func (r *devicesRepo) GetBySerial(ctx context.Context, serial string) (devices.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.Serial == serial {
			return it, nil
		}
	}
	return devices.Device{}, devices.ErrNotFound
}

func (r *devicesRepo) Update(ctx context.Context, id string, in devices.UpdateInput) (devices.Device, error) {
	if !validID(id) {
		return devices.Device{}, devices.ErrInvalidID
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
					return devices.Device{}, devices.ErrDuplicateSerial
				}
			}
			it.Serial = *in.Serial
		}
		if in.Estado != nil {
			it.Estado = *in.Estado
		}
		if in.FechaRegistro != nil {
			it.FechaRegistro = *in.FechaRegistro
		}

		r.items[i] = it
		return it, nil
	}
	return devices.Device{}, devices.ErrNotFound
}

func (r *devicesRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return devices.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return devices.ErrNotFound
}
