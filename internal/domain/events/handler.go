package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petlink-api/internal/domain/devices"
	"petlink-api/internal/domain/users"
	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service, devicesSvc *devices.Service) {
	r.Route("/eventos", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc, usersSvc, devicesSvc))
		er.Get("/{id}", getEventHandler(svc, usersSvc, devicesSvc))
		er.Put("/{id}", updateEventHandler(svc))
		er.Patch("/{id}", patchEventHandler(svc))
		er.Delete("/{id}", deleteEventHandler(svc))
	})
}

type createEventRequest struct {
	UsuarioID     string     `json:"usuario_id"`
	DispositivoID string     `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Hora          int        `json:"hora"`
	TipoEvento    string     `json:"tipo_evento"`
	Descripcion   string     `json:"descripcion"`
	Estado        string     `json:"estado"`
}

type updateEventRequest struct {
	UsuarioID     *string    `json:"usuario_id"`
	DispositivoID *string    `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Hora          *int       `json:"hora"`
	TipoEvento    *string    `json:"tipo_evento"`
	Descripcion   *string    `json:"descripcion"`
	Estado        *string    `json:"estado"`
}

// usuario_id y dispositivo_id van como string en altas/updates
// y expandidos en listados.
type eventResponse struct {
	ID            string    `json:"_id"`
	UsuarioID     any       `json:"usuario_id,omitempty"`
	DispositivoID any       `json:"dispositivo_id,omitempty"`
	Fecha         time.Time `json:"fecha"`
	Hora          int       `json:"hora,omitempty"`
	TipoEvento    string    `json:"tipo_evento"`
	Descripcion   string    `json:"descripcion,omitempty"`
	Estado        string    `json:"estado,omitempty"`
}

type deviceRef struct {
	ID            string    `json:"_id"`
	Serial        string    `json:"serial"`
	Estado        string    `json:"estado,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// userRef nunca incluye la contraseña.
type userRef struct {
	ID             string    `json:"_id"`
	Nombre         string    `json:"nombre"`
	NumeroContacto string    `json:"numero_contacto,omitempty"`
	Correo         string    `json:"correo"`
	FechaRegistro  time.Time `json:"fecha_registro"`
}

func toEventResponse(e Event) eventResponse {
	out := eventResponse{
		ID:          e.ID,
		Fecha:       e.Fecha,
		Hora:        e.Hora,
		TipoEvento:  e.TipoEvento,
		Descripcion: e.Descripcion,
		Estado:      e.Estado,
	}
	if e.UsuarioID != "" {
		out.UsuarioID = e.UsuarioID
	}
	if e.DispositivoID != "" {
		out.DispositivoID = e.DispositivoID
	}
	return out
}

type expandCache struct {
	users   map[string]*userRef
	devices map[string]*deviceRef
}

func newExpandCache() *expandCache {
	return &expandCache{
		users:   map[string]*userRef{},
		devices: map[string]*deviceRef{},
	}
}

func toEventResponseExpanded(r *http.Request, e Event, usersSvc *users.Service, devicesSvc *devices.Service, cache *expandCache) eventResponse {
	out := toEventResponse(e)

	if e.UsuarioID != "" {
		ref, ok := cache.users[e.UsuarioID]
		if !ok {
			if u, err := usersSvc.GetByID(r.Context(), e.UsuarioID); err == nil {
				ref = &userRef{
					ID:             u.ID,
					Nombre:         u.Nombre,
					NumeroContacto: u.NumeroContacto,
					Correo:         u.Correo,
					FechaRegistro:  u.FechaRegistro,
				}
			}
			cache.users[e.UsuarioID] = ref
		}
		if ref != nil {
			out.UsuarioID = ref
		} else {
			out.UsuarioID = nil
		}
	}

	if e.DispositivoID != "" {
		ref, ok := cache.devices[e.DispositivoID]
		if !ok {
			if d, err := devicesSvc.GetByID(r.Context(), e.DispositivoID); err == nil {
				ref = &deviceRef{ID: d.ID, Serial: d.Serial, Estado: d.Estado, FechaRegistro: d.FechaRegistro}
			}
			cache.devices[e.DispositivoID] = ref
		}
		if ref != nil {
			out.DispositivoID = ref
		} else {
			out.DispositivoID = nil
		}
	}

	return out
}

func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			UsuarioID:     req.UsuarioID,
			DispositivoID: req.DispositivoID,
			Fecha:         req.Fecha,
			Hora:          req.Hora,
			TipoEvento:    req.TipoEvento,
			Descripcion:   req.Descripcion,
			Estado:        req.Estado,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "dispositivo_id y tipo_evento son obligatorios")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el evento", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toEventResponse(created))
	}
}

func listEventsHandler(svc *Service, usersSvc *users.Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener los eventos", err)
			return
		}

		cache := newExpandCache()
		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponseExpanded(r, e, usersSvc, devicesSvc, cache))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getEventHandler(svc *Service, usersSvc *users.Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Evento no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el evento", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toEventResponseExpanded(r, e, usersSvc, devicesSvc, newExpandCache()))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), toEventUpdateInput(req))
		if err != nil {
			writeEventUpdateError(w, err, "Error al actualizar el evento")
			return
		}

		httpx.OK(w, http.StatusOK, toEventResponse(updated))
	}
}

func patchEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), toEventUpdateInput(req))
		if err != nil {
			writeEventUpdateError(w, err, "Error al actualizar parcialmente el evento")
			return
		}

		httpx.OK(w, http.StatusOK, toEventResponse(updated))
	}
}

func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Evento no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el evento", err)
			}
			return
		}

		httpx.OKMessage(w, "Evento eliminado correctamente")
	}
}

func toEventUpdateInput(req updateEventRequest) UpdateInput {
	return UpdateInput{
		UsuarioID:     req.UsuarioID,
		DispositivoID: req.DispositivoID,
		Fecha:         req.Fecha,
		Hora:          req.Hora,
		TipoEvento:    req.TipoEvento,
		Descripcion:   req.Descripcion,
		Estado:        req.Estado,
	}
}

func writeEventUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "dispositivo_id y tipo_evento no pueden quedar vacíos")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Evento no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
