package measurements

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
	r.Route("/mediciones", func(mr chi.Router) {
		mr.Post("/", createMeasurementHandler(svc))
		mr.Get("/", listMeasurementsHandler(svc, devicesSvc))
		mr.Get("/{id}", getMeasurementHandler(svc, devicesSvc))
		mr.Put("/{id}", updateMeasurementHandler(svc))
		mr.Patch("/{id}", patchMeasurementHandler(svc))
		mr.Delete("/{id}", deleteMeasurementHandler(svc))
	})
}

type createMeasurementRequest struct {
	DispositivoID string     `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Movimiento    bool       `json:"movimiento"`
	UbicacionLat  float64    `json:"ubicacion_lat"`
	UbicacionLng  float64    `json:"ubicacion_lng"`
	EstadoCollar  bool       `json:"estado_collar"`
	EstadoBroche  bool       `json:"estado_broche"`
	Bateria       float64    `json:"bateria"`
}

type updateMeasurementRequest struct {
	DispositivoID *string    `json:"dispositivo_id"`
	Fecha         *time.Time `json:"fecha"`
	Movimiento    *bool      `json:"movimiento"`
	UbicacionLat  *float64   `json:"ubicacion_lat"`
	UbicacionLng  *float64   `json:"ubicacion_lng"`
	EstadoCollar  *bool      `json:"estado_collar"`
	EstadoBroche  *bool      `json:"estado_broche"`
	Bateria       *float64   `json:"bateria"`
}

// dispositivo_id va como string en altas/updates y expandido en listados.
type measurementResponse struct {
	ID            string    `json:"_id"`
	DispositivoID any       `json:"dispositivo_id,omitempty"`
	Fecha         time.Time `json:"fecha"`
	Movimiento    bool      `json:"movimiento"`
	UbicacionLat  float64   `json:"ubicacion_lat"`
	UbicacionLng  float64   `json:"ubicacion_lng"`
	EstadoCollar  bool      `json:"estado_collar"`
	EstadoBroche  bool      `json:"estado_broche"`
	Bateria       float64   `json:"bateria"`
}

type deviceRef struct {
	ID            string    `json:"_id"`
	Serial        string    `json:"serial"`
	Estado        string    `json:"estado,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

func toMeasurementResponse(m Measurement) measurementResponse {
	out := measurementResponse{
		ID:           m.ID,
		Fecha:        m.Fecha,
		Movimiento:   m.Movimiento,
		UbicacionLat: m.UbicacionLat,
		UbicacionLng: m.UbicacionLng,
		EstadoCollar: m.EstadoCollar,
		EstadoBroche: m.EstadoBroche,
		Bateria:      m.Bateria,
	}
	if m.DispositivoID != "" {
		out.DispositivoID = m.DispositivoID
	}
	return out
}

func toMeasurementResponseExpanded(r *http.Request, m Measurement, devicesSvc *devices.Service, memo map[string]*deviceRef) measurementResponse {
	out := toMeasurementResponse(m)
	if m.DispositivoID == "" {
		return out
	}

	ref, ok := memo[m.DispositivoID]
	if !ok {
		if d, err := devicesSvc.GetByID(r.Context(), m.DispositivoID); err == nil {
			ref = &deviceRef{ID: d.ID, Serial: d.Serial, Estado: d.Estado, FechaRegistro: d.FechaRegistro}
		}
		memo[m.DispositivoID] = ref
	}

	if ref != nil {
		out.DispositivoID = ref
	} else {
		out.DispositivoID = nil
	}
	return out
}

func createMeasurementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMeasurementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			DispositivoID: req.DispositivoID,
			Fecha:         req.Fecha,
			Movimiento:    req.Movimiento,
			UbicacionLat:  req.UbicacionLat,
			UbicacionLng:  req.UbicacionLng,
			EstadoCollar:  req.EstadoCollar,
			EstadoBroche:  req.EstadoBroche,
			Bateria:       req.Bateria,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "El dispositivo y la fecha son obligatorios")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear la medición", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toMeasurementResponse(created))
	}
}

func listMeasurementsHandler(svc *Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar mediciones", err)
			return
		}

		memo := map[string]*deviceRef{}
		out := make([]measurementResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMeasurementResponseExpanded(r, m, devicesSvc, memo))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getMeasurementHandler(svc *Service, devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Medición no encontrada")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener la medición", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toMeasurementResponseExpanded(r, m, devicesSvc, map[string]*deviceRef{}))
	}
}

func updateMeasurementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMeasurementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), toMeasurementUpdateInput(req))
		if err != nil {
			writeMeasurementUpdateError(w, err, "Error al actualizar la medición")
			return
		}

		httpx.OK(w, http.StatusOK, toMeasurementResponse(updated))
	}
}

func patchMeasurementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMeasurementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), toMeasurementUpdateInput(req))
		if err != nil {
			writeMeasurementUpdateError(w, err, "Error al actualizar parcialmente la medición")
			return
		}

		httpx.OK(w, http.StatusOK, toMeasurementResponse(updated))
	}
}

func deleteMeasurementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Medición no encontrada")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar la medición", err)
			}
			return
		}

		httpx.OKMessage(w, "Medición eliminada correctamente")
	}
}

func toMeasurementUpdateInput(req updateMeasurementRequest) UpdateInput {
	return UpdateInput{
		DispositivoID: req.DispositivoID,
		Fecha:         req.Fecha,
		Movimiento:    req.Movimiento,
		UbicacionLat:  req.UbicacionLat,
		UbicacionLng:  req.UbicacionLng,
		EstadoCollar:  req.EstadoCollar,
		EstadoBroche:  req.EstadoBroche,
		Bateria:       req.Bateria,
	}
}

func writeMeasurementUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El dispositivo de la medición no puede quedar vacío")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Medición no encontrada")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
