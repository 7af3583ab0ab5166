package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"promptkeep/services/message-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the message domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.Persona{},
		&entities.Message{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
