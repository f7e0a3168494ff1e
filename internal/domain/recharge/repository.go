package recharge

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, recharge *Recharge) error
	GetByID(ctx context.Context, id uint) (*Recharge, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Recharge, error)
	Update(ctx context.Context, recharge *Recharge) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Recharge, int64, error)

	// FindAutoSelectable returns the member's open recharge expiring soonest,
	// or nil when none qualifies.
	FindAutoSelectable(ctx context.Context, memberID uint, now time.Time) (*Recharge, error)

	// UpdateState writes only the state column.
	UpdateState(ctx context.Context, id uint, state vo.RechargeState) error

	// IncrementUsage adds one use in a single guarded statement. It reports
	// false when the recharge has no remaining times left.
	IncrementUsage(ctx context.Context, id uint) (bool, error)

	// DeductAmount and DeductTimes subtract only when enough credit remains.
	DeductAmount(ctx context.Context, id uint, amount decimal.Decimal) (bool, error)
	DeductTimes(ctx context.Context, id uint, times int) (bool, error)

	CountByPack(ctx context.Context, packID uint) (int64, error)

	// ListIDsAfter pages through non-deleted ids in ascending order.
	ListIDsAfter(ctx context.Context, afterID uint, limit int) ([]uint, error)

	// Statistics aggregates recharge amounts by recharge_at.
	Statistics(ctx context.Context, from, to *time.Time) (*Statistics, error)

	// SumCreated aggregates non-disabled recharges by created_at.
	SumCreated(ctx context.Context, from, to time.Time) (*Statistics, error)
}

type ListFilter struct {
	Search   string
	MemberID *uint
	PackID   *uint
	State    *vo.RechargeState
	query.BaseFilter
}

type Statistics struct {
	TotalAmount   decimal.Decimal
	TotalCount    int64
	AverageAmount decimal.Decimal
}

// NewStatistics fills AverageAmount, rounded to cents.
func NewStatistics(total decimal.Decimal, count int64) *Statistics {
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(count)).Round(2)
	}
	return &Statistics{TotalAmount: total, TotalCount: count, AverageAmount: avg}
}
