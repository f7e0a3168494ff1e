package member

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	GetByPhone(ctx context.Context, phone string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Member, int64, error)

	// AdjustBalance and AdjustPoints apply a signed delta and report false
	// when the result would go negative.
	AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) (bool, error)
	AdjustPoints(ctx context.Context, id uint, delta int) (bool, error)

	// CountActive counts active members created in [from, to]. A nil from
	// counts from the beginning.
	CountActive(ctx context.Context, from *time.Time, to time.Time) (int64, error)
}

type ListFilter struct {
	Search string
	Level  string
	State  *vo.MemberState
	query.BaseFilter
}
