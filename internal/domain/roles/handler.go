package roles

import (
	"encoding/json"
	"errors"
	"net/http"

	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/roles", func(rr chi.Router) {
		rr.Post("/", createRoleHandler(svc))
		rr.Get("/", listRolesHandler(svc))
		rr.Get("/{id}", getRoleHandler(svc))
		rr.Put("/{id}", updateRoleHandler(svc))
		rr.Patch("/{id}", patchRoleHandler(svc))
		rr.Delete("/{id}", deleteRoleHandler(svc))
	})
}

type createRoleRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Nivel       int    `json:"nivel"`
}

type updateRoleRequest struct {
	// Punteros para merge: nil = no tocar.
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Nivel       *int    `json:"nivel"`
}

type roleResponse struct {
	ID          string `json:"_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Nivel       int    `json:"nivel"`
}

func toRoleResponse(r Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Nivel:       r.Nivel,
	}
}

func createRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
			Nivel:       req.Nivel,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "El nombre del rol es obligatorio")
			case errors.Is(err, ErrDuplicateName):
				httpx.Fail(w, http.StatusConflict, "El nombre del rol ya existe")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el rol", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toRoleResponse(created))
	}
}

func listRolesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar roles", err)
			return
		}

		out := make([]roleResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toRoleResponse(it))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rol, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Rol no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el rol", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toRoleResponse(rol))
	}
}

func updateRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
			Nivel:       req.Nivel,
		})
		if err != nil {
			writeRoleUpdateError(w, err, "Error al actualizar el rol")
			return
		}

		httpx.OK(w, http.StatusOK, toRoleResponse(updated))
	}
}

func patchRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
			Nivel:       req.Nivel,
		})
		if err != nil {
			writeRoleUpdateError(w, err, "Error al actualizar parcialmente el rol")
			return
		}

		httpx.OK(w, http.StatusOK, toRoleResponse(updated))
	}
}

func deleteRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Rol no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el rol", err)
			}
			return
		}

		httpx.OKMessage(w, "Rol eliminado correctamente")
	}
}

func writeRoleUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El nombre del rol no puede quedar vacío")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Rol no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	case errors.Is(err, ErrDuplicateName):
		httpx.Fail(w, http.StatusConflict, "Ya existe un rol con ese nombre")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
