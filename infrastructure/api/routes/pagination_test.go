package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PageRequest
	}{
		{"defaults", "", PageRequest{Number: 1, Size: DefaultPageSize}},
		{"explicit", "?page=3&page_size=10", PageRequest{Number: 3, Size: 10}},
		{"capped", "?page_size=1000", PageRequest{Number: 1, Size: MaxPageSize}},
		{"invalid", "?page=-2&page_size=abc", PageRequest{Number: 1, Size: DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/admin/users"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePage(r))
		})
	}
}

func TestPageRequest_Pages(t *testing.T) {
	p := PageRequest{Number: 1, Size: 10}
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
}

func TestPageRequest_Paginate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/users?role=FOUNDER&page=2&page_size=1", nil)
	doc := jsonapi.NewListResponse(nil)

	ParsePage(r).Paginate(r, doc, 3)

	require.NotNil(t, doc.Meta)
	assert.Equal(t, 3, (*doc.Meta)["total_pages"])
	require.NotNil(t, doc.Links)
	assert.Equal(t, "/api/admin/users?page=1&page_size=1&role=FOUNDER", doc.Links.Prev)
	assert.Equal(t, "/api/admin/users?page=3&page_size=1&role=FOUNDER", doc.Links.Next)
	assert.Equal(t, doc.Links.Next, doc.Links.Last)
}
