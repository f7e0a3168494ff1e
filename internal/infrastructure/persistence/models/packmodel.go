package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// PackModel represents the database persistence model for prepaid packages.
type PackModel struct {
	ID          uint            `gorm:"primarykey"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"type:text"`
	PackType    string          `gorm:"size:20;not null;default:times;index:idx_pack_type"`
	Category    string          `gorm:"size:50;index:idx_pack_category"`
	Icon        string          `gorm:"size:255"`
	MemberPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTimes  *int
	ValidDay    int    `gorm:"not null;default:0"`
	State       string `gorm:"size:20;not null;default:active"`
	Position    int    `gorm:"not null;default:0;index:idx_pack_position"`
	SalesCount  int    `gorm:"not null;default:0"`
	Payload     datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PackModel) TableName() string {
	return constants.TablePackages
}
