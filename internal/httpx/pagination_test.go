package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Page
	}{
		{"defaults", "", Page{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=5", Page{Page: 3, Limit: 5}},
		{"non numeric", "?page=abc&limit=x", Page{Page: 1, Limit: 20}},
		{"below one", "?page=0&limit=-2", Page{Page: 1, Limit: 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/roles"+tc.query, nil)
			assert.Equal(t, tc.want, ParsePage(r))
		})
	}
}

func TestPageSkip(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 20}.Skip())
	assert.Equal(t, 40, Page{Page: 3, Limit: 20}.Skip())
}
