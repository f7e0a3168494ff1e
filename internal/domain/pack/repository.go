package pack

import (
	"context"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, pack *Pack) error
	GetByID(ctx context.Context, id uint) (*Pack, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Pack, error)
	Update(ctx context.Context, pack *Pack) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Pack, int64, error)

	// UpdateSalesCount writes only the sales_count column.
	UpdateSalesCount(ctx context.Context, id uint, count int64) error
}

type ListFilter struct {
	Search   string
	PackType *vo.PackType
	Category string
	State    *vo.PackState
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	query.BaseFilter
}
