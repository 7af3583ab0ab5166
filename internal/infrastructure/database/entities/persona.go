package entities

import (
	"time"

	"promptkeep/services/message-api/internal/domain/persona"
)

// Persona represents the database schema for personas. The owner/name pair
// is unique among live rows only; the partial index frees a name for reuse
// once its persona is soft-deleted.
type Persona struct {
	ID          string     `gorm:"type:varchar(30);primaryKey"`
	UserID      string     `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_persona_owner_name,where:deleted_at IS NULL"`
	Name        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_persona_owner_name,where:deleted_at IS NULL"`
	Description *string    `gorm:"type:text"`
	Prompt      *string    `gorm:"column:persona_prompt;type:text"`
	LockVersion int        `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName specifies the table name for Persona.
func (Persona) TableName() string {
	return "personas"
}

// EtoD converts database entity to domain model.
func (p *Persona) EtoD() *persona.Persona {
	return &persona.Persona{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Prompt:      p.Prompt,
		LockVersion: p.LockVersion,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}

// NewSchemaPersona converts domain model to database entity.
func NewSchemaPersona(p *persona.Persona) *Persona {
	return &Persona{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Prompt:      p.Prompt,
		LockVersion: p.LockVersion,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}
