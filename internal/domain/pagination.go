package domain

// PaginatedResult wraps a page of items with listing metadata.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult creates a PaginatedResult for one page of items.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}
