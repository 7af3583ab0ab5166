package user

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "promptkeep/services/message-api/internal/domain/user"
	"promptkeep/services/message-api/internal/infrastructure/database/entities"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for mirrored user accounts.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureExists creates the user row on first sight and returns it. The
// insert races with concurrent first requests of the same user, so conflicts
// on the primary key are ignored and the row re-read.
func (r *PostgresRepository) EnsureExists(ctx context.Context, id string, email *string) (*domain.User, error) {
	entity := entities.User{ID: id, Email: email}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to ensure user",
			err,
			"user-ensure-db-001",
		)
	}

	var found entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&found).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load user",
			err,
			"user-ensure-db-002",
		)
	}

	if found.Email == nil && email != nil {
		if err := r.db.WithContext(ctx).
			Model(&entities.User{}).
			Where("id = ?", id).
			Update("email", email).Error; err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to backfill user email",
				err,
				"user-ensure-db-003",
			)
		}
		found.Email = email
	}

	return found.EtoD(), nil
}
