package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"todaygenda.com/todaygenda/internal/auth"
	config "todaygenda.com/todaygenda/internal/configs"
	model "todaygenda.com/todaygenda/internal/models"
	repository "todaygenda.com/todaygenda/internal/repositories"
	"todaygenda.com/todaygenda/internal/services"
)

// app holds what every command needs: configuration, logger, database and
// the services built on top of them.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	db     *gorm.DB

	daylists *services.DaylistService
	tasks    *services.TaskService
	users    *services.UserService
}

func newApp() (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	db, err := config.NewDatabaseClient(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(auth.DefaultTokenConfig(cfg.SecretKey))
	daylists := services.NewDaylistService(store, cfg.DefaultCutoff, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		daylists: daylists,
		tasks:    services.NewTaskService(store, daylists, logger),
		users:    services.NewUserService(store, auth.NewPasswordHasher(auth.DefaultBcryptCost), tokens, cfg.GuestUserKey, logger),
	}, nil
}

// migrate creates or updates the database schema.
func (a *app) migrate() error {
	if err := repository.Migrate(a.db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	a.logger.Debug("database schema migrated")
	return nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// today returns the command-line user's active list, creating it if needed.
func (a *app) today(ctx context.Context, now time.Time) (*model.User, *model.Daylist, error) {
	user, err := a.users.EnsureLocal(ctx, a.cfg.CLIUser)
	if err != nil {
		return nil, nil, err
	}

	_, list, err := a.daylists.GetOrCreate(ctx, user.ID, now, nil)
	if err != nil {
		return nil, nil, err
	}
	return user, list, nil
}

// withApp wraps a command body with app setup and teardown.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return run(cmd, args, a)
	}
}

// withSchema is withApp for commands that read or write data: the schema is
// migrated before the body runs.
func withSchema(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.migrate(); err != nil {
			return err
		}
		return run(cmd, args, a)
	})
}
