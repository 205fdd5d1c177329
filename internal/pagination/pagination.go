// Package pagination pages ledger listings such as a wallet's transactions.
package pagination

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Order selects the chronological direction of a listing.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
	Order    Order `form:"order" binding:"omitempty,oneof=newest oldest"`
}

// Defaults fills in the first page, the default size and newest-first order.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Order == "" {
		p.Order = Newest
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps one page of a listing with its position in the whole.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Chronological returns a GORM scope ordering rows by the time column in the
// requested direction. Ids are time-ordered and break ties between rows that
// share a timestamp, so pages never overlap.
func Chronological(req PageRequest, column string) func(db *gorm.DB) *gorm.DB {
	dir := "DESC"
	if req.Order == Oldest {
		dir = "ASC"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " " + dir).Order("id " + dir)
	}
}
