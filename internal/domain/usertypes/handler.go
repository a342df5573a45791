package usertypes

import (
	"encoding/json"
	"errors"
	"net/http"

	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tipos_usuarios", func(tr chi.Router) {
		tr.Post("/", createUserTypeHandler(svc))
		tr.Get("/", listUserTypesHandler(svc))
		tr.Get("/{id}", getUserTypeHandler(svc))
		tr.Put("/{id}", updateUserTypeHandler(svc))
		tr.Patch("/{id}", patchUserTypeHandler(svc))
		tr.Delete("/{id}", deleteUserTypeHandler(svc))
	})
}

type createUserTypeRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type updateUserTypeRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type userTypeResponse struct {
	ID          string `json:"_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func toUserTypeResponse(t UserType) userTypeResponse {
	return userTypeResponse{
		ID:          t.ID,
		Nombre:      t.Nombre,
		Descripcion: t.Descripcion,
	}
}

func createUserTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "El nombre del tipo de usuario es obligatorio")
			case errors.Is(err, ErrDuplicateName):
				httpx.Fail(w, http.StatusConflict, "El tipo de usuario ya existe")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear el tipo de usuario", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toUserTypeResponse(created))
	}
}

func listUserTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar los tipos de usuario", err)
			return
		}

		out := make([]userTypeResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toUserTypeResponse(it))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getUserTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipo, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Tipo de usuario no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener el tipo de usuario", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toUserTypeResponse(tipo))
	}
}

func updateUserTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
		})
		if err != nil {
			writeUserTypeUpdateError(w, err, "Error al actualizar el tipo de usuario")
			return
		}

		httpx.OK(w, http.StatusOK, toUserTypeResponse(updated))
	}
}

func patchUserTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Nombre:      req.Nombre,
			Descripcion: req.Descripcion,
		})
		if err != nil {
			writeUserTypeUpdateError(w, err, "Error al actualizar parcialmente el tipo de usuario")
			return
		}

		httpx.OK(w, http.StatusOK, toUserTypeResponse(updated))
	}
}

func deleteUserTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Tipo de usuario no encontrado")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar el tipo de usuario", err)
			}
			return
		}

		httpx.OKMessage(w, "Tipo de usuario eliminado correctamente")
	}
}

func writeUserTypeUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El nombre del tipo de usuario no puede quedar vacío")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Tipo de usuario no encontrado")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	case errors.Is(err, ErrDuplicateName):
		httpx.Fail(w, http.StatusConflict, "Ya existe un tipo de usuario con ese nombre")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
