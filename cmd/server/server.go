package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"promptkeep/services/message-api/internal/config"
	"promptkeep/services/message-api/internal/domain/message"
	"promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/infrastructure/auth"
	"promptkeep/services/message-api/internal/infrastructure/database"
	"promptkeep/services/message-api/internal/infrastructure/logger"
	"promptkeep/services/message-api/internal/infrastructure/observability"
	messagerepo "promptkeep/services/message-api/internal/infrastructure/repository/message"
	personarepo "promptkeep/services/message-api/internal/infrastructure/repository/persona"
	userrepo "promptkeep/services/message-api/internal/infrastructure/repository/user"
	"promptkeep/services/message-api/internal/interfaces/httpserver"
)

// @title Message API
// @version 1.0
// @description Stores prompts and responses with version history and reusable personas.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	personaRepository := personarepo.NewPostgresRepository(db)
	messageRepository := messagerepo.NewPostgresRepository(db)

	authValidator, err := auth.NewValidator(ctx, cfg, log, userRepository)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	personaService := persona.NewService(personaRepository)
	messageService := message.NewService(messageRepository, personaRepository)

	httpServer := httpserver.New(cfg, log, messageService, personaService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
