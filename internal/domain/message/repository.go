package message

import "context"

// Changes is a partial update applied to the latest row of a message. Nil
// fields are left unchanged; ClearPersona unlinks the persona and
// ClearSummary nulls the summary.
type Changes struct {
	Title        *string
	Content      *string
	Summary      *string
	Starred      *bool
	PersonaID    *string
	ClearPersona bool
	ClearSummary bool
}

// Repository defines the interface for message persistence. Every lookup is
// scoped to an owner; absent, soft-deleted and foreign-owned rows are all
// reported as not found.
type Repository interface {
	// Create persists the latest row of a new logical message.
	Create(ctx context.Context, m *Message) error

	// FindOwned retrieves one non-deleted row of a logical message by id
	// and version for the owner. Use VersionLatest for the mutable row.
	FindOwned(ctx context.Context, userID, id string, version int) (*Message, error)

	// List retrieves latest rows matching the filter plus the total count
	// taken before the pagination window.
	List(ctx context.Context, filter *Filter) ([]*Message, int64, error)

	// UpdateLatest atomically snapshots the current latest row as history
	// version max+1, preserving its timestamps, then applies changes to
	// the latest row in place. Returns the mutated latest row.
	UpdateLatest(ctx context.Context, userID, id string, changes Changes) (*Message, error)

	// SoftDeleteAll marks every row of the logical message deleted in a
	// single statement. The delete is terminal.
	SoftDeleteAll(ctx context.Context, userID, id string) error

	// ListHistory retrieves history snapshots (version >= 1) ordered by
	// version descending, plus the total snapshot count.
	ListHistory(ctx context.Context, userID, id string, limit, offset int) ([]*Message, int64, error)
}
