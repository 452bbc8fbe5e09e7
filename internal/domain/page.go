package domain

// PaginationParams selects one page of the trip catalog. Page is 1-indexed;
// Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams normalizes optional ?page= and ?limit= query values.
// A nil or out-of-range value falls back to page 1, limit 20; limit is
// capped at 100.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset is the zero-based row offset matching Page and Limit, for SQL
// OFFSET clauses.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
