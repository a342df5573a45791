package locations

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petlink-api/internal/domain/devices"
	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, devicesSvc *devices.Service) {
	r.Route("/ubicaciones_historicos", func(ur chi.Router) {
		ur.Post("/", createLocationHandler(svc))
		ur.Get("/", listLocationsHandler(svc, devicesSvc))
		ur.Get("/{id}", getLocationHandler(svc, devicesSvc))
		ur.Put("/{id}", updateLocationHandler(svc))
		ur.Patch("/{id}", patchLocationHandler(svc))
		ur.Delete("/{id}", deleteLocationHandler(svc))
	})
}

type createLocationRequest struct {
	DispositivoID string     `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Latitud       *float64   `json:"latitud"`
	Longitud      *float64   `json:"longitud"`
}

type updateLocationRequest struct {
	DispositivoID *string    `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Latitud       *float64   `json:"latitud"`
	Longitud      *float64   `json:"longitud"`
}

type locationResponse struct {
	ID            string    `json:"_id"`
	DispositivoID any       `json:"dispositivo_id,omitempty"`
	Fecha         time.Time `json:"fecha"`
	Latitud       float64   `json:"latitud"`
	Longitud      float64   `json:"longitud"`
}

type deviceRef struct {
	ID            string    `json:"_id"`
	Serial        string    `json:"serial"`
	Estado        string    `json:"estado,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

func toLocationResponse(l LocationRecord) locationResponse {
	out := locationResponse{
		ID:       l.ID,
		Fecha:    l.Fecha,
		Latitud:  l.Latitud,
		Longitud: l.Longitud,
	}
	if l.DispositivoID != "" {
		out.DispositivoID = l.DispositivoID
	}
	return out
}

func toLocationResponseExpanded(r *http.Request, l LocationRecord, devicesSvc *devices.Service, memo map[string]*deviceRef) locationResponse {
	out := toLocationResponse(l)
	if l.DispositivoID == "" {
		return out
	}

	ref, ok := memo[l.DispositivoID]
	if !ok {
		if d, err := devicesSvc.GetByID(r.Context(), l.DispositivoID); err == nil {
			ref = &deviceRef{ID: d.ID, Serial: d.Serial, Estado: d.Estado, FechaRegistro: d.FechaRegistro}
		}
		memo[l.DispositivoID] = ref
	}

	if ref != nil {
		out.DispositivoID = ref
	} else {
		out.DispositivoID = nil
	}
	return out
}

func createLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			DispositivoID: req.DispositivoID,
			Fecha:         req.Fecha,
			Latitud:       req.Latitud,
			Longitud:      req.Longitud,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Dispositivo, latitud y longitud son obligatorios")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el registro de ubicación", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toLocationResponse(created))
	}
}

func listLocationsHandler(svc *Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar ubicaciones", err)
			return
		}

		memo := map[string]*deviceRef{}
		out := make([]locationResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLocationResponseExpanded(r, l, devicesSvc, memo))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getLocationHandler(svc *Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Registro de ubicación no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el registro de ubicación", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toLocationResponseExpanded(r, l, devicesSvc, map[string]*deviceRef{}))
	}
}

func updateLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			DispositivoID: req.DispositivoID,
			Fecha:         req.Fecha,
			Latitud:       req.Latitud,
			Longitud:      req.Longitud,
		})
		if err != nil {
			writeLocationUpdateError(w, err, "Error al actualizar el registro de ubicación")
			return
		}

		httpx.OK(w, http.StatusOK, toLocationResponse(updated))
	}
}

func patchLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			DispositivoID: req.DispositivoID,
			Fecha:         req.Fecha,
			Latitud:       req.Latitud,
			Longitud:      req.Longitud,
		})
		if err != nil {
			writeLocationUpdateError(w, err, "Error al actualizar parcialmente el registro de ubicación")
			return
		}

		httpx.OK(w, http.StatusOK, toLocationResponse(updated))
	}
}

func deleteLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Registro de ubicación no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el registro de ubicación", err)
			}
			return
		}

		httpx.OKMessage(w, "Registro de ubicación eliminado correctamente")
	}
}

func writeLocationUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El dispositivo del registro no puede quedar vacío")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Registro de ubicación no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
