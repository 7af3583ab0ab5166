package entities

import (
	"time"

	"promptkeep/services/message-api/internal/domain/message"
)

// Message represents the database schema for message rows. The primary key
// is composite: every row of a logical message shares the id, the mutable
// latest row carries version -1 and history snapshots carry 1..k.
//
// Timestamps are managed by the repository, not GORM, because archiving a
// latest row into history must keep its original created_at and updated_at.
type Message struct {
	ID          string     `gorm:"type:varchar(30);primaryKey"`
	Version     int        `gorm:"primaryKey"`
	UserID      string     `gorm:"type:varchar(64);not null;index"`
	PersonaID   *string    `gorm:"type:varchar(30);index"`
	MessageType string     `gorm:"type:varchar(16);not null"`
	Title       string     `gorm:"type:varchar(500);not null"`
	Content     string     `gorm:"type:text;not null"`
	Summary     *string    `gorm:"type:varchar(10000)"`
	Starred     bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts database entity to domain model.
func (m *Message) EtoD() *message.Message {
	return &message.Message{
		ID:        m.ID,
		Version:   m.Version,
		UserID:    m.UserID,
		PersonaID: m.PersonaID,
		Type:      message.Type(m.MessageType),
		Title:     m.Title,
		Content:   m.Content,
		Summary:   m.Summary,
		Starred:   m.Starred,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// NewSchemaMessage converts domain model to database entity.
func NewSchemaMessage(m *message.Message) *Message {
	return &Message{
		ID:          m.ID,
		Version:     m.Version,
		UserID:      m.UserID,
		PersonaID:   m.PersonaID,
		MessageType: string(m.Type),
		Title:       m.Title,
		Content:     m.Content,
		Summary:     m.Summary,
		Starred:     m.Starred,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}
