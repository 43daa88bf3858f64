package domain

// Pagination is the page metadata returned by list endpoints.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

// HasMore reports whether a page after CurrentPage exists.
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}
