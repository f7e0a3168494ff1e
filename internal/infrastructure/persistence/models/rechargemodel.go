package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// RechargeModel represents the database persistence model for recharge
// records. State may hold legacy values (valid, used) written by older
// clients; the mapper normalises them on read.
type RechargeModel struct {
	ID              uint            `gorm:"primarykey"`
	MemberID        uint            `gorm:"not null;index:idx_recharge_member_end,priority:1"`
	PackID          *uint           `gorm:"index:idx_recharge_pack"`
	PackageName     string          `gorm:"size:200"`
	Type            string          `gorm:"size:20;not null;default:balance"`
	RechargeAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BonusAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTimes      *int
	UsedTimes       int `gorm:"not null;default:0"`
	RemainingTimes  *int
	StartDate       *time.Time
	EndDate         *time.Time `gorm:"index:idx_recharge_member_end,priority:2"`
	ValidityDays    *int
	PaymentType     string    `gorm:"size:50"`
	Seq             string    `gorm:"size:80;index:idx_recharge_seq"`
	State           string    `gorm:"size:20;index:idx_recharge_state"`
	RechargeAt      time.Time `gorm:"index:idx_recharge_at"`
	OperatorID      *uint
	Remark          string `gorm:"type:text"`
	Payload         datatypes.JSON
	CreatedAt       time.Time `gorm:"index:idx_recharge_created"`
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (RechargeModel) TableName() string {
	return constants.TableRecharges
}
