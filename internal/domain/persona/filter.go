package persona

// Filter contains criteria for listing personas.
type Filter struct {
	UserID string

	// Pagination
	Limit  int
	Offset int
}

// NewFilter creates a filter scoped to the owner with default pagination.
func NewFilter(userID string) *Filter {
	return &Filter{
		UserID: userID,
		Limit:  20,
		Offset: 0,
	}
}

// WithPagination sets the pagination parameters.
func (f *Filter) WithPagination(limit, offset int) *Filter {
	f.Limit = limit
	f.Offset = offset
	return f
}
