package domain

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PaginationParams selects one page of a list. Page starts at 1.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Missing or non-positive values fall back to page 1 and a limit of 20;
// the limit is capped at 100.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: defaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, maxPageLimit)
	}
	return p
}

// Offset is the SQL OFFSET of the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a list together with the size of the whole list.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NewPage wraps items fetched with p. A nil items slice becomes empty so it
// encodes as [] rather than null.
func NewPage[T any](items []T, p PaginationParams, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}

// HasMore reports whether pages after this one exist.
func (pg Page[T]) HasMore() bool {
	return int64(pg.Page*pg.Limit) < pg.Total
}
