package models

import "supportdesk/internal/shared/constants"

// UserModel is the read-only projection of the console's users table.
type UserModel struct {
	ID    uint   `gorm:"primarykey"`
	Email string `gorm:"uniqueIndex;not null;size:255"`
	Role  string `gorm:"not null;size:20;default:user"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
