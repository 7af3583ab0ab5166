package message

import "time"

// VersionLatest is the version sentinel carried by the single mutable row of
// a logical message. History snapshots are numbered 1..k with no gaps.
const VersionLatest = -1

// Type distinguishes saved prompts from saved responses.
type Type string

const (
	TypePrompt   Type = "prompt"
	TypeResponse Type = "response"
)

// IsValid reports whether t is a known message type.
func (t Type) IsValid() bool {
	return t == TypePrompt || t == TypeResponse
}

// Message is one row of a logical message: either the mutable latest row
// (Version == VersionLatest) or an immutable history snapshot (Version >= 1).
// All rows of a logical id share the same ID.
type Message struct {
	ID        string  `json:"id"`
	Version   int     `json:"version"`
	UserID    string  `json:"user_id"`
	PersonaID *string `json:"persona_id,omitempty"`
	Type      Type    `json:"message_type"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Summary   *string `json:"summary,omitempty"`
	Starred   bool    `json:"starred"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// IsLatest reports whether this row is the mutable latest row.
func (m *Message) IsLatest() bool {
	return m.Version == VersionLatest
}

// MaxTitleLength bounds message titles.
const MaxTitleLength = 500

// MaxSummaryLength bounds message summaries.
const MaxSummaryLength = 10000
