package message

// Filter contains criteria for listing latest message rows.
type Filter struct {
	UserID    string
	Type      *Type
	Starred   *bool
	PersonaID *string

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

// WithType sets the message type filter.
func (f *Filter) WithType(t Type) *Filter {
	f.Type = &t
	return f
}

// WithStarred sets the starred filter.
func (f *Filter) WithStarred(starred bool) *Filter {
	f.Starred = &starred
	return f
}

// WithPersonaID sets the persona filter.
func (f *Filter) WithPersonaID(personaID string) *Filter {
	f.PersonaID = &personaID
	return f
}

// WithPagination sets the pagination parameters.
func (f *Filter) WithPagination(limit, offset int) *Filter {
	f.Limit = limit
	f.Offset = offset
	return f
}
