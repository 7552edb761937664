package models

// Default and maximum page sizes for list endpoints.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Paginate returns the requested page of items. Page is clamped to at least 1 and size
// to [1, MaxPageSize]; a page past the end is empty.
func Paginate[T any](items []T, page, size int) ([]T, *Pagination) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	meta := &Pagination{Page: page, PageSize: size, TotalCount: len(items)}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}
