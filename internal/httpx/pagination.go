package httpx

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Page son los parámetros de paginación ya normalizados (page 1-indexado).
type Page struct {
	Page  int
	Limit int
}

func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage lee ?page y ?limit de la query. Valores ausentes o no numéricos
// caen a los defaults; valores < 1 también.
func ParsePage(r *http.Request) Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.Limit = n
		}
	}

	return p
}
