package db

import (
	"gorm.io/gorm"
)

// Paginate limits a query to one page. page and pageSize are expected to be
// normalized already (see utils.ValidatePagination).
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderByCreated orders rows oldest first with id as tie-break, the canonical
// ordering for tickets and messages alike.
func OrderByCreated(alias string) func(db *gorm.DB) *gorm.DB {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(prefix + "created_at ASC").Order(prefix + "id ASC")
	}
}
