package user

import "time"

// User is a locally mirrored account row. The identifier is the subject
// claim of the access token; rows are created lazily on first authenticated
// request and never managed through the API.
type User struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
