package consumption

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, consumption *Consumption) error
	GetByID(ctx context.Context, id uint) (*Consumption, error)
	Update(ctx context.Context, consumption *Consumption) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Consumption, int64, error)

	// CountUsageByRecharge counts non-deleted consumptions of the recharge
	// whose state counts toward usage.
	CountUsageByRecharge(ctx context.Context, rechargeID uint) (int64, error)

	// Statistics aggregates amounts by consumption_at.
	Statistics(ctx context.Context, from, to *time.Time) (*Statistics, error)
}

type ListFilter struct {
	MemberID    *uint
	PackID      *uint
	RechargeID  *uint
	OperatorID  *uint
	PaymentType string
	State       *vo.ConsumptionState
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	query.BaseFilter
}

type Statistics struct {
	TotalAmount   decimal.Decimal
	TotalCount    int64
	AverageAmount decimal.Decimal
}

func NewStatistics(total decimal.Decimal, count int64) *Statistics {
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(count)).Round(2)
	}
	return &Statistics{TotalAmount: total, TotalCount: count, AverageAmount: avg}
}
