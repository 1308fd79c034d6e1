package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"supportdesk/internal/infrastructure/persistence/models"
	db "supportdesk/internal/shared/db"
)

// UserDirectory reads the console's users table. It never writes.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) EmailsByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	emails := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return emails, nil
	}

	var rows []models.UserModel
	if err := db.GetTxFromContext(ctx, d.db).
		Select("id", "email").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load user emails: %w", err)
	}

	for _, row := range rows {
		emails[row.ID] = row.Email
	}
	return emails, nil
}

func (d *UserDirectory) IDsByEmailQuery(ctx context.Context, query string, limit int) ([]uint, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil, nil
	}

	var ids []uint
	tx := db.GetTxFromContext(ctx, d.db).
		Model(&models.UserModel{}).
		Where("LOWER(email) LIKE ?", "%"+query+"%").
		Order("id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to search users by email: %w", err)
	}
	return ids, nil
}
