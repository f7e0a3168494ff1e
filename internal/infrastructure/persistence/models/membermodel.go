package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// MemberModel represents the database persistence model for members.
// Phone uniqueness is checked among non-deleted rows by the application,
// so the column carries a plain index.
type MemberModel struct {
	ID         uint   `gorm:"primarykey"`
	Name       string `gorm:"size:100"`
	Phone      string `gorm:"size:20;index:idx_member_phone"`
	Email      string `gorm:"size:100"`
	Gender     string `gorm:"size:10"`
	Birthday   *time.Time
	Level      string          `gorm:"size:10;index:idx_member_level"`
	Balance    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Points     int             `gorm:"not null;default:0"`
	State      string          `gorm:"size:20;not null;default:active;index:idx_member_state"`
	Avatar     datatypes.JSON
	RegisterAt *time.Time
	Remark     string `gorm:"type:text"`
	Payload    datatypes.JSON
	CreatedAt  time.Time `gorm:"index:idx_member_created"`
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (MemberModel) TableName() string {
	return constants.TableMembers
}
