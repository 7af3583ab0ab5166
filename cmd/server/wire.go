//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"promptkeep/services/message-api/internal/config"
	messageDomain "promptkeep/services/message-api/internal/domain/message"
	personaDomain "promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/domain/user"
	"promptkeep/services/message-api/internal/infrastructure/auth"
	"promptkeep/services/message-api/internal/infrastructure/database"
	"promptkeep/services/message-api/internal/infrastructure/logger"
	messagerepo "promptkeep/services/message-api/internal/infrastructure/repository/message"
	personarepo "promptkeep/services/message-api/internal/infrastructure/repository/persona"
	userrepo "promptkeep/services/message-api/internal/infrastructure/repository/user"
	"promptkeep/services/message-api/internal/interfaces/httpserver"
)

var repositorySet = wire.NewSet(
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Repository), new(*userrepo.PostgresRepository)),
	personarepo.NewPostgresRepository,
	wire.Bind(new(personaDomain.Repository), new(*personarepo.PostgresRepository)),
	messagerepo.NewPostgresRepository,
	wire.Bind(new(messageDomain.Repository), new(*messagerepo.PostgresRepository)),
)

var serviceSet = wire.NewSet(
	personaDomain.NewService,
	messageDomain.NewService,
)

// BuildApplication demonstrates how to assemble the message service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newGormDB,
		auth.NewValidator,
		repositorySet,
		serviceSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}
