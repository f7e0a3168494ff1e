package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// ConsumptionModel represents the database persistence model for
// consumption records.
type ConsumptionModel struct {
	ID            uint            `gorm:"primarykey"`
	MemberID      *uint           `gorm:"index:idx_consumption_member"`
	RechargeID    *uint           `gorm:"index:idx_consumption_recharge"`
	PackID        *uint           `gorm:"index:idx_consumption_pack"`
	CustomerName  string          `gorm:"size:100"`
	CustomerPhone string          `gorm:"size:20"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentType   string          `gorm:"size:50"`
	Seq           string          `gorm:"size:80;index:idx_consumption_seq"`
	State         string          `gorm:"size:20"`
	ConsumptionAt time.Time       `gorm:"index:idx_consumption_at"`
	OperatorID    *uint
	Remark        string `gorm:"type:text"`
	Payload       datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ConsumptionModel) TableName() string {
	return constants.TableConsumptions
}
