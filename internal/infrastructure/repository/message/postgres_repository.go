package message

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "promptkeep/services/message-api/internal/domain/message"
	"promptkeep/services/message-api/internal/infrastructure/database/entities"
	"promptkeep/services/message-api/internal/infrastructure/metrics"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for message rows and implements
// the versioning engine: one mutable latest row per logical message plus
// immutable history snapshots numbered 1..k.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the latest row of a new logical message.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Message) error {
	entity := entities.NewSchemaMessage(m)
	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"message-create-db-001",
		)
	}

	m.CreatedAt = entity.CreatedAt
	m.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindOwned retrieves one non-deleted row by id and version for the owner.
// Absent, deleted and foreign-owned rows all report not found.
func (r *PostgresRepository) FindOwned(ctx context.Context, userID, id string, version int) (*domain.Message, error) {
	var entity entities.Message
	if err := r.db.WithContext(ctx).
		Where("id = ? AND version = ? AND user_id = ? AND deleted_at IS NULL", id, version, userID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"message not found",
				err,
				"message-find-notfound-001",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find message",
			err,
			"message-find-db-001",
		)
	}
	return entity.EtoD(), nil
}

// List retrieves latest rows matching the filter. The total is counted
// before the pagination window is applied.
func (r *PostgresRepository) List(ctx context.Context, filter *domain.Filter) ([]*domain.Message, int64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("message_list", time.Since(start).Seconds()) }()

	query := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("user_id = ? AND version = ? AND deleted_at IS NULL", filter.UserID, domain.VersionLatest)

	if filter.Type != nil {
		query = query.Where("message_type = ?", string(*filter.Type))
	}
	if filter.Starred != nil {
		query = query.Where("starred = ?", *filter.Starred)
	}
	if filter.PersonaID != nil {
		query = query.Where("persona_id = ?", *filter.PersonaID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count messages",
			err,
			"message-list-count-001",
		)
	}

	var rows []entities.Message
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"message-list-db-001",
		)
	}

	messages := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].EtoD())
	}
	return messages, total, nil
}

// UpdateLatest atomically archives the current latest state as history
// version max+1, preserving its original timestamps, then applies changes
// to the latest row in place. Runs in one transaction so concurrent updates
// cannot claim the same history number.
func (r *PostgresRepository) UpdateLatest(ctx context.Context, userID, id string, changes domain.Changes) (*domain.Message, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("message_update", time.Since(start).Seconds()) }()

	var updated *domain.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ? AND version = ? AND user_id = ? AND deleted_at IS NULL",
			id, domain.VersionLatest, userID)
		// SQLite has no FOR UPDATE; its single writer gives the same guarantee.
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var latest entities.Message
		if err := query.First(&latest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return platformerrors.NewError(
					ctx,
					platformerrors.LayerRepository,
					platformerrors.ErrorTypeNotFound,
					"message not found",
					err,
					"message-update-notfound-001",
				)
			}
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to lock message",
				err,
				"message-update-db-001",
			)
		}

		var maxVersion int
		if err := tx.Model(&entities.Message{}).
			Where("id = ? AND version >= 1", id).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to number history snapshot",
				err,
				"message-update-db-002",
			)
		}

		snapshot := latest
		snapshot.Version = maxVersion + 1
		if err := tx.Create(&snapshot).Error; err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to archive message snapshot",
				err,
				"message-update-db-003",
			)
		}

		cols := map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}
		if changes.Title != nil {
			cols["title"] = *changes.Title
		}
		if changes.Content != nil {
			cols["content"] = *changes.Content
		}
		if changes.ClearSummary {
			cols["summary"] = nil
		} else if changes.Summary != nil {
			cols["summary"] = *changes.Summary
		}
		if changes.Starred != nil {
			cols["starred"] = *changes.Starred
		}
		if changes.ClearPersona {
			cols["persona_id"] = nil
		} else if changes.PersonaID != nil {
			cols["persona_id"] = *changes.PersonaID
		}

		if err := tx.Model(&entities.Message{}).
			Where("id = ? AND version = ?", id, domain.VersionLatest).
			Updates(cols).Error; err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to update message",
				err,
				"message-update-db-004",
			)
		}

		var after entities.Message
		if err := tx.Where("id = ? AND version = ?", id, domain.VersionLatest).
			First(&after).Error; err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to reload message",
				err,
				"message-update-db-005",
			)
		}
		updated = after.EtoD()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDeleteAll marks every row of the logical message deleted in a single
// statement. History snapshots become unreachable together with the latest
// row; the delete is terminal.
func (r *PostgresRepository) SoftDeleteAll(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		Update("deleted_at", time.Now().UTC())
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete message",
			result.Error,
			"message-delete-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"message not found",
			nil,
			"message-delete-notfound-001",
		)
	}
	return nil
}

// ListHistory retrieves history snapshots ordered by version descending.
// Gating on the latest row is the service's job; this only reads rows with
// version >= 1.
func (r *PostgresRepository) ListHistory(ctx context.Context, userID, id string, limit, offset int) ([]*domain.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("id = ? AND user_id = ? AND version >= 1 AND deleted_at IS NULL", id, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count history",
			err,
			"message-history-count-001",
		)
	}

	var rows []entities.Message
	if err := query.
		Order("version DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list history",
			err,
			"message-history-db-001",
		)
	}

	messages := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].EtoD())
	}
	return messages, total, nil
}
