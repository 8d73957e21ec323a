package article

import "math"

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64 // Total number of matching articles
	Page       int64 // Current page number (1-based)
	Limit      int64 // Number of articles per page
	TotalPages int64 // Total number of pages
}

// NewPagination creates a new Pagination instance with calculated total pages.
func NewPagination(total, page, limit int64) *Pagination {
	var totalPages int64
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// Offset returns the number of rows to skip for the page.
// Pages beyond the int64 range saturate instead of wrapping.
func (p *Pagination) Offset() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}
