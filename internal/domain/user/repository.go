package user

import "context"

// Repository defines the interface for user persistence.
type Repository interface {
	// EnsureExists creates the user row on first sight and returns it.
	// Existing rows are returned unchanged except for a missing email,
	// which is backfilled from the token.
	EnsureExists(ctx context.Context, id string, email *string) (*User, error)
}
