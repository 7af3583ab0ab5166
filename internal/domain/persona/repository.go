package persona

import "context"

// Repository defines the interface for persona persistence. Every lookup is
// scoped to an owner; absent, soft-deleted and foreign-owned rows are all
// reported as not found.
type Repository interface {
	// Create persists a new persona. A live name collision for the owner
	// surfaces as a conflict error.
	Create(ctx context.Context, p *Persona) error

	// FindOwned retrieves a non-deleted persona by id for the owner.
	FindOwned(ctx context.Context, userID, id string) (*Persona, error)

	// List retrieves personas matching the filter plus the total count
	// taken before the pagination window.
	List(ctx context.Context, filter *Filter) ([]*Persona, int64, error)

	// Update writes the mutated persona and bumps LockVersion. A live name
	// collision surfaces as a conflict error and leaves the row untouched.
	Update(ctx context.Context, p *Persona) error

	// SoftDelete marks the persona deleted and bumps LockVersion.
	SoftDelete(ctx context.Context, userID, id string) error
}
