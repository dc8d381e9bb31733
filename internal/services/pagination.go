package services

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Page is a normalized page request: Page >= 1 and Limit in 1..MaxPageSize.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	// keeps (page-1)*limit well inside int
	if page > math.MaxInt32 {
		page = math.MaxInt32
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore reports whether rows exist past this page.
func (p Page) HasMore(returned int, total int64) bool {
	return int64(p.Offset()+returned) < total
}
