// Package devicelink expone la superficie reducida que consume el firmware
// del collar (ESP32): autenticación por serial, envío de telemetría, reporte
// de eventos y consulta de configuración/comandos.
//
// No hay sesiones ni tokens: cada llamada se re-identifica por serial.
// Los cuerpos de éxito mantienen la forma plana que el firmware parsea;
// los errores sí van con el envelope canónico.
package devicelink

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petlink-api/internal/domain/devices"
	"petlink-api/internal/domain/events"
	"petlink-api/internal/domain/measurements"
	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, devicesSvc *devices.Service, measurementsSvc *measurements.Service, eventsSvc *events.Service) {
	r.Route("/dispositivo", func(dr chi.Router) {
		dr.Post("/login", loginHandler(devicesSvc))
		dr.Post("/data", dataHandler(devicesSvc, measurementsSvc))
		dr.Post("/evento", eventHandler(devicesSvc, eventsSvc))
		dr.Get("/config/{serial}", configHandler(devicesSvc))
		dr.Get("/comando/{serial}", commandHandler(devicesSvc))
	})
}

type loginRequest struct {
	Serial string `json:"serial"`
}

type loginResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type telemetryPayload struct {
	Fecha        *time.Time `json:"fecha"`
	Movimiento   bool       `json:"movimiento"`
	UbicacionLat float64    `json:"ubicacion_lat"`
	UbicacionLng float64    `json:"ubicacion_lng"`
	EstadoCollar bool       `json:"estado_collar"`
	EstadoBroche bool       `json:"estado_broche"`
	Bateria      float64    `json:"bateria"`
}

type dataRequest struct {
	Serial string           `json:"serial"`
	Data   telemetryPayload `json:"data"`
}

type deviceEventRequest struct {
	Serial      string `json:"serial"`
	TipoEvento  string `json:"tipo_evento"`
	Descripcion string `json:"descripcion"`
}

type ackResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Configuración estática que el collar consulta por polling:
// qué encender en modo perdido y cada cuánto revisar sensores.
type lostModeConfig struct {
	Leds     bool `json:"leds"`
	Pantalla bool `json:"pantalla"`
	Buzzer   bool `json:"buzzer"`
}

type normalModeConfig struct {
	VerificarSensores bool `json:"verificar_sensores"`
	FrecuenciaCheck   int  `json:"frecuencia_check"` // segundos
}

type deviceConfig struct {
	ModoPerdido lostModeConfig   `json:"modo_perdido"`
	ModoNormal  normalModeConfig `json:"modo_normal"`
}

type deviceCommand struct {
	Accion    string    `json:"accion"` // ninguno | apagar | reiniciar | modo_ahorro
	Timestamp time.Time `json:"timestamp"`
}

func loginHandler(devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		d, err := devicesSvc.GetBySerial(r.Context(), req.Serial)
		if err != nil {
			writeDeviceLookupError(w, err, "Dispositivo no registrado")
			return
		}

		httpx.Raw(w, http.StatusOK, loginResponse{Message: "Autenticado", ID: d.ID})
	}
}

func dataHandler(devicesSvc *devices.Service, measurementsSvc *measurements.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		d, err := devicesSvc.GetBySerial(r.Context(), req.Serial)
		if err != nil {
			writeDeviceLookupError(w, err, "Dispositivo no encontrado")
			return
		}

		m, err := measurementsSvc.Ingest(r.Context(), d.ID, measurements.CreateInput{
			Fecha:        req.Data.Fecha,
			Movimiento:   req.Data.Movimiento,
			UbicacionLat: req.Data.UbicacionLat,
			UbicacionLng: req.Data.UbicacionLng,
			EstadoCollar: req.Data.EstadoCollar,
			EstadoBroche: req.Data.EstadoBroche,
			Bateria:      req.Data.Bateria,
		})
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al registrar los datos", err)
			return
		}

		httpx.Raw(w, http.StatusOK, ackResponse{Message: "Datos recibidos", ID: m.ID})
	}
}

func eventHandler(devicesSvc *devices.Service, eventsSvc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deviceEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		d, err := devicesSvc.GetBySerial(r.Context(), req.Serial)
		if err != nil {
			writeDeviceLookupError(w, err, "Dispositivo no encontrado")
			return
		}

		e, err := eventsSvc.Report(r.Context(), d.ID, req.TipoEvento, req.Descripcion)
		if err != nil {
			if errors.Is(err, events.ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "tipo_evento es obligatorio")
				return
			}
			httpx.FailErr(w, http.StatusInternalServerError, "Error al registrar el evento", err)
			return
		}

		httpx.Raw(w, http.StatusOK, ackResponse{Message: "Evento registrado", ID: e.ID})
	}
}

func configHandler(devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := devicesSvc.GetBySerial(r.Context(), chi.URLParam(r, "serial"))
		if err != nil {
			writeDeviceLookupError(w, err, "Dispositivo no encontrado")
			return
		}

		httpx.Raw(w, http.StatusOK, deviceConfig{
			ModoPerdido: lostModeConfig{
				Leds:     true,
				Pantalla: true,
				Buzzer:   true,
			},
			ModoNormal: normalModeConfig{
				VerificarSensores: true,
				FrecuenciaCheck:   5,
			},
		})
	}
}

func commandHandler(devicesSvc *devices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := devicesSvc.GetBySerial(r.Context(), chi.URLParam(r, "serial"))
		if err != nil {
			writeDeviceLookupError(w, err, "Dispositivo no encontrado")
			return
		}

		// TODO: leer el comando pendiente desde el panel web cuando exista;
		// por ahora no hay acción encolada.
		httpx.Raw(w, http.StatusOK, deviceCommand{
			Accion:    "ninguno",
			Timestamp: time.Now(),
		})
	}
}

func writeDeviceLookupError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, devices.ErrNotFound) {
		httpx.Fail(w, http.StatusNotFound, notFoundMsg)
		return
	}
	httpx.FailErr(w, http.StatusInternalServerError, "Error al resolver el dispositivo", err)
}
