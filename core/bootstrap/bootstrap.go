package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/database"
	"github.com/chanceofrain/spotifam/core/logger"
)

// Seeder populates reference data after migrations. It must be idempotent.
type Seeder func(db *sqlx.DB) error

// App holds the initialized shared infrastructure.
type App struct {
	Config *config.Config
	DB     *sqlx.DB
}

// Run initializes logging, connects to the database, applies migrations and
// runs the seeder. On success the caller owns closing App.DB.
func Run(configPath string, seed Seeder) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.LoggingSettings{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		KeysOrder:   cfg.Logging.KeysOrder,
		DebugSample: cfg.Logging.DebugSample,
		Dir:         cfg.Logging.Dir,
		File:        cfg.Logging.BotFile,
		Profile:     cfg.Logging.Profile,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if seed != nil {
		if err := seed(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return &App{Config: cfg, DB: db}, nil
}
