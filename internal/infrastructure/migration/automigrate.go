package migration

import (
	"fmt"

	"gorm.io/gorm"

	"supportdesk/internal/infrastructure/persistence/models"
	"supportdesk/internal/shared/logger"
)

// AutoMigrateModels lists the tables owned by the ticket store plus the user projection.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketMessageModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. Used by tests
// and throwaway sqlite databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm-automigrate"
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed", "models_count", len(models))
	return nil
}
