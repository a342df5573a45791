package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"petlink-api/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/mascotas", func(mr chi.Router) {
		mr.Post("/", createPetHandler(svc))
		mr.Get("/", listPetsHandler(svc))
		mr.Get("/{id}", getPetHandler(svc))
		mr.Put("/{id}", updatePetHandler(svc))
		mr.Patch("/{id}", patchPetHandler(svc))
		mr.Delete("/{id}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Serial        string `json:"serial"`
	NombreMascota string `json:"nombre_mascota"`
	RazaPerro     string `json:"raza_perro"`
	EdadPerro     int    `json:"edad_perro"`
}

type updatePetRequest struct {
	Serial        *string `json:"serial"`
	NombreMascota *string `json:"nombre_mascota"`
	RazaPerro     *string `json:"raza_perro"`
	EdadPerro     *int    `json:"edad_perro"`
}

type petResponse struct {
	ID            string `json:"_id"`
	Serial        string `json:"serial"`
	NombreMascota string `json:"nombre_mascota"`
	RazaPerro     string `json:"raza_perro,omitempty"`
	EdadPerro     int    `json:"edad_perro,omitempty"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:            p.ID,
		Serial:        p.Serial,
		NombreMascota: p.NombreMascota,
		RazaPerro:     p.RazaPerro,
		EdadPerro:     p.EdadPerro,
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			Serial:        req.Serial,
			NombreMascota: req.NombreMascota,
			RazaPerro:     req.RazaPerro,
			EdadPerro:     req.EdadPerro,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "El serial y el nombre de la mascota son obligatorios")
			case errors.Is(err, ErrDuplicateSerial):
				httpx.Fail(w, http.StatusConflict, "Ya existe una mascota con ese serial")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al crear la mascota", err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, toPetResponse(created))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := httpx.ParsePage(r)

		items, total, err := svc.List(r.Context(), page.Skip(), page.Limit)
		if err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, "Error al listar mascotas", err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toPetResponse(it))
		}

		httpx.OKList(w, out, httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Mascota no encontrada")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al obtener la mascota", err)
			}
			return
		}

		httpx.OK(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Serial:        req.Serial,
			NombreMascota: req.NombreMascota,
			RazaPerro:     req.RazaPerro,
			EdadPerro:     req.EdadPerro,
		})
		if err != nil {
			writePetUpdateError(w, err, "Error al actualizar la mascota")
			return
		}

		httpx.OK(w, http.StatusOK, toPetResponse(updated))
	}
}

func patchPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Serial:        req.Serial,
			NombreMascota: req.NombreMascota,
			RazaPerro:     req.RazaPerro,
			EdadPerro:     req.EdadPerro,
		})
		if err != nil {
			writePetUpdateError(w, err, "Error al actualizar parcialmente la mascota")
			return
		}

		httpx.OK(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Mascota no encontrada")
			case errors.Is(err, ErrInvalidID):
				httpx.Fail(w, http.StatusBadRequest, "ID inválido")
			default:
				httpx.FailErr(w, http.StatusInternalServerError, "Error al eliminar la mascota", err)
			}
			return
		}

		httpx.OKMessage(w, "Mascota eliminada correctamente")
	}
}

func writePetUpdateError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "El serial y el nombre de la mascota no pueden quedar vacíos")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Mascota no encontrada")
	case errors.Is(err, ErrInvalidID):
		httpx.Fail(w, http.StatusBadRequest, "ID inválido")
	case errors.Is(err, ErrDuplicateSerial):
		httpx.Fail(w, http.StatusConflict, "Ya existe una mascota con ese serial")
	default:
		httpx.FailErr(w, http.StatusInternalServerError, fallback, err)
	}
}
