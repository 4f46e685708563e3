package rest

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// PageRequest carries the page/size/sortBy/sortDir query parameters shared
// by all list endpoints. Page numbering is zero-based.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// ParsePageRequest reads pagination parameters from the request, falling
// back to the given default sort column. Unknown sort directions fall back
// to ascending; repositories are responsible for allow-listing SortBy.
func ParsePageRequest(r *http.Request, defaultSortBy string) PageRequest {
	page := PageRequest{
		Page:    0,
		Size:    defaultPageSize,
		SortBy:  defaultSortBy,
		SortDir: "asc",
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page.Page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > maxPageSize {
				n = maxPageSize
			}
			page.Size = n
		}
	}
	if v := r.URL.Query().Get("sortBy"); v != "" {
		page.SortBy = v
	}
	if v := strings.ToLower(r.URL.Query().Get("sortDir")); v == "desc" {
		page.SortDir = "desc"
	}

	return page
}

// Page is the JSON envelope returned by list endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, Page: req.Page, Size: req.Size}
}
