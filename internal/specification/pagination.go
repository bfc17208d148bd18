package specification

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PaginationParams carries the 1-based paging window shared by all listing
// endpoints.
type PaginationParams struct {
	Page int `form:"pageIndex"`
	Size int `form:"pageSize"`
}

// PageIndex returns the requested page, clamped to 1 when absent or invalid.
func (p PaginationParams) PageIndex() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// PageSize returns the requested page size, defaulted and capped.
func (p PaginationParams) PageSize() int {
	if p.Size < 1 {
		return defaultPageSize
	}
	if p.Size > maxPageSize {
		return maxPageSize
	}
	return p.Size
}
