package devices

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dispositivos", func(dr chi.Router) {
		dr.Post("/", createDeviceHandler(svc))
		dr.Get("/", listDevicesHandler(svc))
		dr.Get("/{id}", getDeviceHandler(svc))
		dr.Put("/{id}", updateDeviceHandler(svc))
		dr.Patch("/{id}", patchDeviceHandler(svc))
		dr.Delete("/{id}", deleteDeviceHandler(svc))
	})
}

type createDeviceRequest struct {
	Serial        string     `json:"serial"`
	Estado        string     `json:"estado"`
	FechaRegistro *time.Time `json:"fecha_registro"`
}

type updateDeviceRequest struct {
	Serial        *string    `json:"serial"`
	Estado        *string    `json:"estado"`
	FechaRegistro *time.Time `json:"fecha_registro"`
}

type deviceResponse struct {
	ID            string    `json:"_id"`
	Serial        string    `json:"serial"`
	Estado        string    `json:"estado,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

func toDeviceResponse(d Device) deviceResponse {
	return deviceResponse{
		ID:            d.ID,
		Serial:        d.Serial,
		Estado:        d.Estado,
		FechaRegistro: d.FechaRegistro,
	}
}

func createDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			Serial:        req.Serial,
			Estado:        req.Estado,
			FechaRegistro: req.FechaRegistro,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "El serial del dispositivo es obligatorio")
			case errors.Is(err, ErrDuplicateSerial):
				httpx.Fail(w, http.StatusConflict, "Ya existe un dispositivo con ese serial")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el dispositivo", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toDeviceResponse(created))
	}
}

func listDevicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar dispositivos", err)
			return
		}

		out := make([]deviceResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toDeviceResponse(it))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Dispositivo no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el dispositivo", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toDeviceResponse(d))
	}
}

func updateDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Serial:        req.Serial,
			Estado:        req.Estado,
			FechaRegistro: req.FechaRegistro,
		})
		if err != nil {
			writeDeviceUpdateError(w, err, "Error al actualizar el dispositivo")
			return
		}

		httpx.OK(w, http.StatusOK, toDeviceResponse(updated))
	}
}

func patchDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Serial:        req.Serial,
			Estado:        req.Estado,
			FechaRegistro: req.FechaRegistro,
		})
		if err != nil {
			writeDeviceUpdateError(w, err, "Error al actualizar parcialmente el dispositivo")
			return
		}

		httpx.OK(w, http.StatusOK, toDeviceResponse(updated))
	}
}

func deleteDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Dispositivo no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el dispositivo", err)
			}
			return
		}

		httpx.OKMessage(w, "Dispositivo eliminado correctamente")
	}
}

func writeDeviceUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El serial del dispositivo no puede quedar vacío")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Dispositivo no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	case errors.Is(err, ErrDuplicateSerial):
		httpx.Fail(w, http.StatusConflict, "Ya existe un dispositivo con ese serial")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
