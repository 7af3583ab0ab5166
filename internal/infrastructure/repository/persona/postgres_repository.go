package persona

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/infrastructure/database/entities"
	"promptkeep/services/message-api/internal/infrastructure/metrics"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for personas.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new persona record. A live name collision for the owner
// surfaces as a conflict.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Persona) error {
	entity := entities.NewSchemaPersona(p)
	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"persona with this name already exists",
				err,
				"persona-create-conflict-001",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create persona",
			err,
			"persona-create-db-001",
		)
	}

	p.CreatedAt = entity.CreatedAt
	p.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindOwned retrieves a non-deleted persona by id for the owner. Absent,
// deleted and foreign-owned rows all report not found.
func (r *PostgresRepository) FindOwned(ctx context.Context, userID, id string) (*domain.Persona, error) {
	var entity entities.Persona
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"persona not found",
				err,
				"persona-find-notfound-001",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find persona",
			err,
			"persona-find-db-001",
		)
	}
	return entity.EtoD(), nil
}

// List retrieves personas matching the filter. The total is counted before
// the pagination window is applied.
func (r *PostgresRepository) List(ctx context.Context, filter *domain.Filter) ([]*domain.Persona, int64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("persona_list", time.Since(start).Seconds()) }()

	query := r.db.WithContext(ctx).Model(&entities.Persona{}).
		Where("user_id = ? AND deleted_at IS NULL", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count personas",
			err,
			"persona-list-count-001",
		)
	}

	var rows []entities.Persona
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list personas",
			err,
			"persona-list-db-001",
		)
	}

	personas := make([]*domain.Persona, 0, len(rows))
	for i := range rows {
		personas = append(personas, rows[i].EtoD())
	}
	return personas, total, nil
}

// Update writes the mutated persona and bumps LockVersion. On a name
// collision the row is left untouched and a conflict is returned.
func (r *PostgresRepository) Update(ctx context.Context, p *domain.Persona) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&entities.Persona{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", p.ID, p.UserID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"description":    p.Description,
			"persona_prompt": p.Prompt,
			"lock_version":   gorm.Expr("lock_version + 1"),
			"updated_at":     now,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"persona with this name already exists",
				result.Error,
				"persona-update-conflict-001",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update persona",
			result.Error,
			"persona-update-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"persona not found",
			nil,
			"persona-update-notfound-001",
		)
	}

	p.LockVersion++
	p.UpdatedAt = now
	return nil
}

// SoftDelete marks the persona deleted and bumps LockVersion. The deleted
// name immediately becomes available for new personas.
func (r *PostgresRepository) SoftDelete(ctx context.Context, userID, id string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&entities.Persona{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		Updates(map[string]interface{}{
			"deleted_at":   now,
			"lock_version": gorm.Expr("lock_version + 1"),
			"updated_at":   now,
		})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete persona",
			result.Error,
			"persona-delete-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"persona not found",
			nil,
			"persona-delete-notfound-001",
		)
	}
	return nil
}

// isUniqueViolation detects unique index violations across the drivers the
// repository runs on: pgx error code 23505, gorm's translated error, and
// the sqlite message used by the test harness.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
