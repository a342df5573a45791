package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"petlink-api/internal/router"
)

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"meta"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{Logger: zerolog.Nop()}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, string(raw))
	}
	return env
}

func createEntity(t *testing.T, baseURL, path string, body map[string]any) map[string]any {
	t.Helper()
	st, raw := doReq(t, baseURL, "POST", path, body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating %s, got %d body=%s", path, st, string(raw))
	}
	env := decodeEnvelope(t, raw)
	if !env.OK {
		t.Fatalf("expected ok=true creating %s, body=%s", path, string(raw))
	}
	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	id, _ := data["_id"].(string)
	if id == "" {
		t.Fatalf("expected _id in created %s, body=%s", path, string(raw))
	}
	return data
}

func TestHTTP_EndToEnd_RoleLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// 1) Alta de rol
	rol := createEntity(t, ts.URL, "/api/roles", map[string]any{
		"nombre":      "admin",
		"descripcion": "Administrador del sistema",
		"nivel":       4,
	})
	rolID := rol["_id"].(string)

	// 2) El nombre es único
	{
		st, raw := doReq(t, ts.URL, "POST", "/api/roles", map[string]any{
			"nombre": "admin",
			"nivel":  4,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate role, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		if env.OK {
			t.Fatalf("expected ok=false on conflict, body=%s", string(raw))
		}
	}

	// 3) Alta sin nombre => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/roles", map[string]any{"nivel": 1})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 creating role without name, got %d", st)
		}
	}

	// 4) Lectura individual
	{
		st, raw := doReq(t, ts.URL, "GET", "/api/roles/"+rolID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get role, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var got map[string]any
		_ = json.Unmarshal(env.Data, &got)
		if got["nombre"] != "admin" || got["nivel"].(float64) != 4 {
			t.Fatalf("unexpected role payload: %s", string(env.Data))
		}
	}

	// 5) ID malformado => 400, ID bien formado inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/roles/no-es-un-oid", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 malformed id, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/roles/64b0c0ffee0ddf00dd000000", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown id, got %d", st)
		}
	}

	// 6) PATCH parcial: solo descripcion, el resto queda igual
	{
		st, raw := doReq(t, ts.URL, "PATCH", "/api/roles/"+rolID, map[string]any{
			"descripcion": "Acceso total",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch role, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var got map[string]any
		_ = json.Unmarshal(env.Data, &got)
		if got["descripcion"] != "Acceso total" || got["nombre"] != "admin" {
			t.Fatalf("patch should only touch provided fields: %s", string(env.Data))
		}
	}

	// 7) PUT con los mismos semánticos de merge
	{
		st, raw := doReq(t, ts.URL, "PUT", "/api/roles/"+rolID, map[string]any{
			"nivel": 5,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 put role, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var got map[string]any
		_ = json.Unmarshal(env.Data, &got)
		if got["nivel"].(float64) != 5 || got["descripcion"] != "Acceso total" {
			t.Fatalf("unexpected role after put: %s", string(env.Data))
		}
	}

	// 8) Borrado y verificación
	{
		st, raw := doReq(t, ts.URL, "DELETE", "/api/roles/"+rolID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete role, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		if !env.OK || env.Message == "" {
			t.Fatalf("expected ok + message on delete, body=%s", string(raw))
		}

		st, _ = doReq(t, ts.URL, "GET", "/api/roles/"+rolID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/roles/"+rolID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_Pagination_NewestFirst(t *testing.T) {
	ts := newTestServer(t)

	for i := 1; i <= 5; i++ {
		createEntity(t, ts.URL, "/api/tipos_usuarios", map[string]any{
			"nombre":      fmt.Sprintf("tipo-%d", i),
			"descripcion": "clasificación",
		})
	}

	// Página 1 con limit 2: los dos más recientes
	st, raw := doReq(t, ts.URL, "GET", "/api/tipos_usuarios?page=1&limit=2", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(raw))
	}
	env := decodeEnvelope(t, raw)
	if env.Meta == nil || env.Meta.Total != 5 || env.Meta.Page != 1 || env.Meta.Limit != 2 {
		t.Fatalf("unexpected meta: %+v", env.Meta)
	}

	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["nombre"] != "tipo-5" || items[1]["nombre"] != "tipo-4" {
		t.Fatalf("expected newest first, got %v, %v", items[0]["nombre"], items[1]["nombre"])
	}

	// Página fuera de rango: lista vacía pero total intacto
	st, raw = doReq(t, ts.URL, "GET", "/api/tipos_usuarios?page=9&limit=2", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 out-of-range page, got %d", st)
	}
	env = decodeEnvelope(t, raw)
	_ = json.Unmarshal(env.Data, &items)
	if len(items) != 0 || env.Meta.Total != 5 {
		t.Fatalf("expected empty page with total=5, got %d items total=%d", len(items), env.Meta.Total)
	}

	// Parámetros inválidos caen a defaults
	st, raw = doReq(t, ts.URL, "GET", "/api/tipos_usuarios?page=abc&limit=-3", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with bad params, got %d", st)
	}
	env = decodeEnvelope(t, raw)
	if env.Meta.Page != 1 || env.Meta.Limit != 20 {
		t.Fatalf("expected default pagination, got %+v", env.Meta)
	}
}

func TestHTTP_Users_PasswordNeverReturned(t *testing.T) {
	ts := newTestServer(t)

	rol := createEntity(t, ts.URL, "/api/roles", map[string]any{
		"nombre": "dueño",
		"nivel":  3,
	})
	rolID := rol["_id"].(string)

	st, raw := doReq(t, ts.URL, "POST", "/api/usuarios", map[string]any{
		"rol_id":          rolID,
		"nombre":          "Valentina",
		"numero_contacto": "3001234567",
		"contrasena_":     "secreta123",
		"correo":          "valentina@example.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating user, got %d body=%s", st, string(raw))
	}
	if strings.Contains(string(raw), "contrasena_") || strings.Contains(string(raw), "secreta123") {
		t.Fatalf("create response leaks password material: %s", string(raw))
	}

	env := decodeEnvelope(t, raw)
	var created map[string]any
	_ = json.Unmarshal(env.Data, &created)
	userID := created["_id"].(string)

	// GET individual expande rol_id al documento del rol
	st, raw = doReq(t, ts.URL, "GET", "/api/usuarios/"+userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get user, got %d body=%s", st, string(raw))
	}
	if strings.Contains(string(raw), "contrasena_") {
		t.Fatalf("get response leaks password field: %s", string(raw))
	}
	env = decodeEnvelope(t, raw)
	var got map[string]any
	_ = json.Unmarshal(env.Data, &got)
	rolObj, ok := got["rol_id"].(map[string]any)
	if !ok {
		t.Fatalf("expected expanded rol_id object, got %v", got["rol_id"])
	}
	if rolObj["nombre"] != "dueño" {
		t.Fatalf("unexpected expanded role: %v", rolObj)
	}

	// Listado tampoco filtra la contraseña
	st, raw = doReq(t, ts.URL, "GET", "/api/usuarios", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list users, got %d", st)
	}
	if strings.Contains(string(raw), "contrasena_") {
		t.Fatalf("list response leaks password field: %s", string(raw))
	}

	// Alta sin obligatorios => 400
	st, _ = doReq(t, ts.URL, "POST", "/api/usuarios", map[string]any{
		"nombre": "Sin Correo",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 creating incomplete user, got %d", st)
	}

	// PATCH sin contraseña no la toca; PATCH con contraseña vacía => 400
	st, raw = doReq(t, ts.URL, "PATCH", "/api/usuarios/"+userID, map[string]any{
		"numero_contacto": "3119876543",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch user, got %d body=%s", st, string(raw))
	}
	st, _ = doReq(t, ts.URL, "PATCH", "/api/usuarios/"+userID, map[string]any{
		"contrasena_": "",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 blanking password, got %d", st)
	}
}

func TestHTTP_Pets_SerialUnique(t *testing.T) {
	ts := newTestServer(t)

	createEntity(t, ts.URL, "/api/mascotas", map[string]any{
		"serial":         "COLLAR-001",
		"nombre_mascota": "Luna",
		"raza_perro":     "criollo",
		"edad_perro":     3,
	})

	st, raw := doReq(t, ts.URL, "POST", "/api/mascotas", map[string]any{
		"serial":         "COLLAR-001",
		"nombre_mascota": "Rocky",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate pet serial, got %d body=%s", st, string(raw))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/mascotas", map[string]any{
		"serial": "COLLAR-002",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 pet without name, got %d", st)
	}
}

func TestHTTP_DeviceEndpoints(t *testing.T) {
	ts := newTestServer(t)

	dev := createEntity(t, ts.URL, "/api/dispositivos", map[string]any{
		"serial": "ESP32-AB12",
		"estado": "activo",
	})
	devID := dev["_id"].(string)

	// Login por serial devuelve cuerpo plano, sin envelope
	{
		st, raw := doReq(t, ts.URL, "POST", "/api/dispositivo/login", map[string]any{
			"serial": "ESP32-AB12",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 device login, got %d body=%s", st, string(raw))
		}
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if body["message"] != "Autenticado" || body["id"] != devID {
			t.Fatalf("unexpected login body: %s", string(raw))
		}
		if _, has := body["ok"]; has {
			t.Fatalf("device login must not be enveloped: %s", string(raw))
		}
	}

	// Serial desconocido => 404 con envelope de error
	{
		st, raw := doReq(t, ts.URL, "POST", "/api/dispositivo/login", map[string]any{
			"serial": "NO-EXISTE",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown serial, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		if env.OK || env.Message == "" {
			t.Fatalf("expected error envelope, body=%s", string(raw))
		}
	}

	// Telemetría: se persiste como medición ligada al dispositivo
	{
		st, raw := doReq(t, ts.URL, "POST", "/api/dispositivo/data", map[string]any{
			"serial": "ESP32-AB12",
			"data": map[string]any{
				"movimiento":    true,
				"ubicacion_lat": 4.60971,
				"ubicacion_lng": -74.08175,
				"estado_collar": true,
				"estado_broche": false,
				"bateria":       87.5,
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 device data, got %d body=%s", st, string(raw))
		}

		st, raw = doReq(t, ts.URL, "GET", "/api/mediciones", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list mediciones, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		var items []map[string]any
		_ = json.Unmarshal(env.Data, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 medicion, got %d", len(items))
		}
		if items[0]["bateria"].(float64) != 87.5 {
			t.Fatalf("unexpected medicion: %v", items[0])
		}
	}

	// Evento reportado por el collar queda con estado "reportado"
	{
		st, raw := doReq(t, ts.URL, "POST", "/api/dispositivo/evento", map[string]any{
			"serial":      "ESP32-AB12",
			"tipo_evento": "broche_abierto",
			"descripcion": "apertura detectada",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 device event, got %d body=%s", st, string(raw))
		}

		st, raw = doReq(t, ts.URL, "GET", "/api/eventos", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list eventos, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		var items []map[string]any
		_ = json.Unmarshal(env.Data, &items)
		if len(items) != 1 || items[0]["estado"] != "reportado" {
			t.Fatalf("expected reported event, got %v", items)
		}
	}

	// Configuración fija para el firmware
	{
		st, raw := doReq(t, ts.URL, "GET", "/api/dispositivo/config/ESP32-AB12", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 device config, got %d body=%s", st, string(raw))
		}
		var cfg struct {
			ModoPerdido struct {
				Leds     bool `json:"leds"`
				Pantalla bool `json:"pantalla"`
				Buzzer   bool `json:"buzzer"`
			} `json:"modo_perdido"`
			ModoNormal struct {
				VerificarSensores bool `json:"verificar_sensores"`
				FrecuenciaCheck   int  `json:"frecuencia_check"`
			} `json:"modo_normal"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			t.Fatalf("decode config: %v", err)
		}
		if !cfg.ModoPerdido.Leds || !cfg.ModoPerdido.Pantalla || !cfg.ModoPerdido.Buzzer {
			t.Fatalf("unexpected modo_perdido: %+v", cfg.ModoPerdido)
		}
		if !cfg.ModoNormal.VerificarSensores || cfg.ModoNormal.FrecuenciaCheck != 5 {
			t.Fatalf("unexpected modo_normal: %+v", cfg.ModoNormal)
		}
	}

	// Comando pendiente: sin panel web siempre es "ninguno"
	{
		st, raw := doReq(t, ts.URL, "GET", "/api/dispositivo/comando/ESP32-AB12", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 device command, got %d body=%s", st, string(raw))
		}
		var cmd map[string]any
		_ = json.Unmarshal(raw, &cmd)
		if cmd["accion"] != "ninguno" {
			t.Fatalf("unexpected command: %s", string(raw))
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/dispositivo/comando/NO-EXISTE", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 command for unknown serial, got %d", st)
		}
	}
}

func TestHTTP_LocationsAndEvents_CRUD(t *testing.T) {
	ts := newTestServer(t)

	dev := createEntity(t, ts.URL, "/api/dispositivos", map[string]any{
		"serial": "ESP32-CD34",
	})
	devID := dev["_id"].(string)

	// Latitud/longitud cero son coordenadas válidas
	loc := createEntity(t, ts.URL, "/api/ubicaciones_historicos", map[string]any{
		"dispositivo_id": devID,
		"latitud":        0,
		"longitud":       0,
	})
	locID := loc["_id"].(string)

	st, _ := doReq(t, ts.URL, "POST", "/api/ubicaciones_historicos", map[string]any{
		"dispositivo_id": devID,
		"latitud":        4.7,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 location without longitud, got %d", st)
	}

	// Lectura expande dispositivo_id
	st, raw := doReq(t, ts.URL, "GET", "/api/ubicaciones_historicos/"+locID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get location, got %d body=%s", st, string(raw))
	}
	env := decodeEnvelope(t, raw)
	var got map[string]any
	_ = json.Unmarshal(env.Data, &got)
	devObj, ok := got["dispositivo_id"].(map[string]any)
	if !ok || devObj["serial"] != "ESP32-CD34" {
		t.Fatalf("expected expanded dispositivo_id, got %v", got["dispositivo_id"])
	}

	// Evento administrativo por CRUD, luego borrado
	ev := createEntity(t, ts.URL, "/api/eventos", map[string]any{
		"dispositivo_id": devID,
		"tipo_evento":    "bateria_baja",
		"descripcion":    "al 10%",
		"hora":           14,
	})
	evID := ev["_id"].(string)

	st, raw = doReq(t, ts.URL, "PATCH", "/api/eventos/"+evID, map[string]any{
		"estado": "atendido",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch event, got %d body=%s", st, string(raw))
	}
	env = decodeEnvelope(t, raw)
	_ = json.Unmarshal(env.Data, &got)
	if got["estado"] != "atendido" || got["tipo_evento"] != "bateria_baja" {
		t.Fatalf("unexpected patched event: %s", string(env.Data))
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/api/eventos/"+evID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete event, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/api/eventos/"+evID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after event delete, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", resp.StatusCode)
	}
}
