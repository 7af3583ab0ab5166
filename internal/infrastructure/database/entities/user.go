package entities

import (
	"time"

	"promptkeep/services/message-api/internal/domain/user"
)

// User represents the database schema for locally mirrored accounts. The id
// is the token subject claim, so no local id is generated.
type User struct {
	ID          string     `gorm:"type:varchar(64);primaryKey"`
	Email       *string    `gorm:"type:varchar(320)"`
	LockVersion int        `gorm:"not null;default:1"`
	DeletedAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts database entity to domain model.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
