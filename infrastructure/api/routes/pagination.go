package routes

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
)

// Page sizes for paginated admin listings.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PageRequest is the page window asked for by a request.
type PageRequest struct {
	Number int
	Size   int
}

// ParsePage reads page and page_size from the query string. Missing or
// invalid values fall back to the first page of DefaultPageSize, and sizes
// are capped at MaxPageSize.
func ParsePage(r *http.Request) PageRequest {
	q := r.URL.Query()
	return PageRequest{
		Number: positiveInt(q.Get("page"), 1),
		Size:   min(positiveInt(q.Get("page_size"), DefaultPageSize), MaxPageSize),
	}
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Pages returns how many pages hold total rows.
func (p PageRequest) Pages(total int64) int {
	if p.Size < 1 || total < 1 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// Paginate attaches page meta and navigation links to doc.
func (p PageRequest) Paginate(r *http.Request, doc *jsonapi.Document, total int64) {
	pages := p.Pages(total)
	doc.Meta = &jsonapi.Meta{
		"page":        p.Number,
		"page_size":   p.Size,
		"total_count": total,
		"total_pages": pages,
	}

	link := func(n int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("page_size", strconv.Itoa(p.Size))
		return (&url.URL{Path: r.URL.Path, RawQuery: q.Encode()}).String()
	}
	links := &jsonapi.Links{Self: link(p.Number), First: link(1)}
	if pages > 0 {
		links.Last = link(pages)
	}
	if p.Number > 1 {
		links.Prev = link(p.Number - 1)
	}
	if p.Number < pages {
		links.Next = link(p.Number + 1)
	}
	doc.Links = links
}
