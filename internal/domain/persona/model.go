package persona

import "time"

// Persona is a user-defined prompt template. Names are unique per owner
// among non-deleted personas; deleting a persona frees its name for reuse.
type Persona struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Prompt      *string `json:"persona_prompt"`

	// LockVersion starts at 1 and is bumped on every mutation, including
	// soft delete.
	LockVersion int `json:"version"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// MaxNameLength bounds persona names.
const MaxNameLength = 255

// MaxDescriptionLength bounds persona descriptions.
const MaxDescriptionLength = 5000
