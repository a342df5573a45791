package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope es la forma canónica de respuesta de la API:
// { ok, data?, meta?, message?, error? }.
type Envelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Meta acompaña a los listados paginados.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK responde { ok: true, data } con el status indicado.
func OK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{OK: true, Data: data})
}

// OKList responde un listado con su meta de paginación.
func OKList(w http.ResponseWriter, data any, meta Meta) {
	writeJSON(w, http.StatusOK, Envelope{OK: true, Data: data, Meta: &meta})
}

// OKMessage responde { ok: true, message } (confirmaciones de borrado, etc.).
func OKMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{OK: true, Message: message})
}

// Fail responde { ok: false, message }.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{OK: false, Message: message})
}

// FailErr agrega el detalle del error en el campo diagnóstico `error`.
// El mensaje visible nunca lleva trazas internas.
func FailErr(w http.ResponseWriter, status int, message string, err error) {
	env := Envelope{OK: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	writeJSON(w, status, env)
}

// Raw responde un cuerpo JSON sin envelope (endpoints de dispositivo).
func Raw(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}
