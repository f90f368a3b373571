package models

import (
	"fmt"
	"strings"
)

// Pagination is the count/next/previous contract surfaced on every
// paginated listing. Next and Previous are relative URLs, nil at the
// edges of the collection.
type Pagination struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NewPagination derives pagination metadata for the given path from a
// page number, page size and total row count. The path may already
// carry a query string.
func NewPagination(path string, page, pageSize, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	p := &Pagination{Count: total}
	if page*pageSize < total {
		next := fmt.Sprintf("%s%spage=%d", path, sep, page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("%s%spage=%d", path, sep, page-1)
		p.Previous = &prev
	}
	return p
}
