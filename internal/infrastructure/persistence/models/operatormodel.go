package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// OperatorModel represents the database persistence model for staff accounts.
type OperatorModel struct {
	ID           uint   `gorm:"primarykey"`
	Account      string `gorm:"uniqueIndex;size:20;not null"`
	Name         string `gorm:"size:50;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:staff"`
	Status       string `gorm:"size:20;not null;default:active"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (OperatorModel) TableName() string {
	return constants.TableOperators
}
