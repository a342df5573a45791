package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petlink-api/internal/domain/roles"
	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, rolesSvc *roles.Service) {
	r.Route("/usuarios", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc, rolesSvc))
		ur.Get("/{id}", getUserHandler(svc, rolesSvc))
		ur.Put("/{id}", updateUserHandler(svc))
		ur.Patch("/{id}", patchUserHandler(svc))
		ur.Delete("/{id}", deleteUserHandler(svc))
	})
}

type createUserRequest struct {
	RolID          string     `json:"rol_id"`
	Nombre         string     `json:"nombre"`
	NumeroContacto string     `json:"numero_contacto"`
	Contrasena     string     `json:"contrasena_"`
	Correo         string     `json:"correo"`
	FechaRegistro  *time.Time `json:"fecha_registro"`
}

type updateUserRequest struct {
	RolID          *string    `json:"rol_id"`
	Nombre         *string    `json:"nombre"`
	NumeroContacto *string    `json:"numero_contacto"`
	Contrasena     *string    `json:"contrasena_"`
	Correo         *string    `json:"correo"`
	FechaRegistro  *time.Time `json:"fecha_registro"`
}

// userResponse nunca incluye contrasena_, sin importar el origen del dato.
// rol_id puede venir como string (alta/updates) o como rol expandido (listados).
type userResponse struct {
	ID             string    `json:"_id"`
	RolID          any       `json:"rol_id,omitempty"`
	Nombre         string    `json:"nombre"`
	NumeroContacto string    `json:"numero_contacto,omitempty"`
	Correo         string    `json:"correo"`
	FechaRegistro  time.Time `json:"fecha_registro"`
}

type roleRef struct {
	ID          string `json:"_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Nivel       int    `json:"nivel"`
}

func toUserResponse(u User) userResponse {
	out := userResponse{
		ID:             u.ID,
		Nombre:         u.Nombre,
		NumeroContacto: u.NumeroContacto,
		Correo:         u.Correo,
		FechaRegistro:  u.FechaRegistro,
	}
	if u.RolID != "" {
		out.RolID = u.RolID
	}
	return out
}

// toUserResponseExpanded reemplaza rol_id por el documento del rol.
// Una referencia colgante queda en null implícito (omitida).
func toUserResponseExpanded(r *http.Request, u User, rolesSvc *roles.Service, memo map[string]*roleRef) userResponse {
	out := toUserResponse(u)
	if u.RolID == "" {
		return out
	}

	ref, ok := memo[u.RolID]
	if !ok {
		if rol, err := rolesSvc.GetByID(r.Context(), u.RolID); err == nil {
			ref = &roleRef{ID: rol.ID, Nombre: rol.Nombre, Descripcion: rol.Descripcion, Nivel: rol.Nivel}
		}
		memo[u.RolID] = ref
	}

	if ref != nil {
		out.RolID = ref
	} else {
		out.RolID = nil
	}
	return out
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			RolID:          req.RolID,
			Nombre:         req.Nombre,
			NumeroContacto: req.NumeroContacto,
			Contrasena:     req.Contrasena,
			Correo:         req.Correo,
			FechaRegistro:  req.FechaRegistro,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Nombre, correo y contraseña son obligatorios")
			case errors.Is(err, ErrHashFailure):
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el usuario", err)
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el usuario", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toUserResponse(created))
	}
}

func listUsersHandler(svc *Service, rolesSvc *roles.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar usuarios", err)
			return
		}

		memo := map[string]*roleRef{}
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponseExpanded(r, u, rolesSvc, memo))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getUserHandler(svc *Service, rolesSvc *roles.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Usuario no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el usuario", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toUserResponseExpanded(r, u, rolesSvc, map[string]*roleRef{}))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			RolID:          req.RolID,
			Nombre:         req.Nombre,
			NumeroContacto: req.NumeroContacto,
			Contrasena:     req.Contrasena,
			Correo:         req.Correo,
			FechaRegistro:  req.FechaRegistro,
		})
		if err != nil {
			writeUserUpdateError(w, err, "Error al actualizar el usuario")
			return
		}

		httpx.OK(w, http.StatusOK, toUserResponse(updated))
	}
}

func patchUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			RolID:          req.RolID,
			Nombre:         req.Nombre,
			NumeroContacto: req.NumeroContacto,
			Contrasena:     req.Contrasena,
			Correo:         req.Correo,
			FechaRegistro:  req.FechaRegistro,
		})
		if err != nil {
			writeUserUpdateError(w, err, "Error al actualizar parcialmente el usuario")
			return
		}

		httpx.OK(w, http.StatusOK, toUserResponse(updated))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Usuario no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el usuario", err)
			}
			return
		}

		httpx.OKMessage(w, "Usuario eliminado correctamente")
	}
}

func writeUserUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Nombre, correo y contraseña no pueden quedar vacíos")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
