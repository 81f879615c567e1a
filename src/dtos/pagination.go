package dtos

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is the metadata block attached to every paginated response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ParsePageParams coerces raw query parameters into a valid page (>= 1) and
// limit (1..100). Anything unparsable or out of range falls back to the defaults.
func ParsePageParams(pageStr, limitStr string) (int, int) {
	page := DefaultPage
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	limit := DefaultLimit
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= MaxLimit {
		limit = l
	}
	return page, limit
}

// NewPagination computes the pagination metadata for a page of totalCount records.
func NewPagination(totalCount int64, page, limit int) Pagination {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Offset returns the record offset for the given page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
