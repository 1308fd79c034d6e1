package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"supportdesk/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scriptsFS embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Strategy defines the interface for migration strategies
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// GooseStrategy applies the embedded SQL scripts for one dialect.
type GooseStrategy struct {
	dialect     string
	scriptsPath string
	logger      logger.Interface
}

// NewGooseStrategy picks the script directory for driver ("sqlite" or "mysql").
func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	var dialect, dir string
	switch driver {
	case "", "sqlite":
		dialect, dir = "sqlite3", "scripts/sqlite"
	case "mysql":
		dialect, dir = "mysql", "scripts/mysql"
	default:
		return nil, fmt.Errorf("unsupported migration driver: %s", driver)
	}

	return &GooseStrategy{
		dialect:     dialect,
		scriptsPath: dir,
		logger:      logger.NewLogger().With("component", "migration.goose"),
	}, nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	s.logger.Infow("starting goose migration",
		"dialect", s.dialect,
		"scripts_path", s.scriptsPath)

	return s.run(db, func(sqlDB *sql.DB) error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, s.scriptsPath); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	return s.run(db, func(sqlDB *sql.DB) error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, s.scriptsPath); err != nil {
				s.logger.Errorw("down migration failed", "error", err)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully")
		return nil
	})
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	var version int64
	err := s.run(db, func(sqlDB *sql.DB) error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	return s.run(db, func(sqlDB *sql.DB) error {
		if err := goose.Status(sqlDB, s.scriptsPath); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

func (s *GooseStrategy) run(db *gorm.DB, fn func(*sql.DB) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scriptsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return fn(sqlDB)
}
