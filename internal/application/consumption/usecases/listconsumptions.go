package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type ListConsumptionsQuery struct {
	MemberID    *uint
	PackID      *uint
	RechargeID  *uint
	OperatorID  *uint
	PaymentType string
	State       string
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

type ListConsumptionsResult struct {
	Consumptions []*dto.ConsumptionDTO
	Total        int64
	Page         int
	PageSize     int
}

type ListConsumptionsUseCase struct {
	consumptionRepo consumption.Repository
	enricher        *enricher
	logger          logger.Interface
}

func NewListConsumptionsUseCase(
	consumptionRepo consumption.Repository,
	rechargeRepo recharge.Repository,
	packRepo pack.Repository,
	logger logger.Interface,
) *ListConsumptionsUseCase {
	return &ListConsumptionsUseCase{
		consumptionRepo: consumptionRepo,
		enricher:        &enricher{rechargeRepo: rechargeRepo, packRepo: packRepo},
		logger:          logger,
	}
}

func (uc *ListConsumptionsUseCase) Execute(ctx context.Context, q ListConsumptionsQuery) (*ListConsumptionsResult, error) {
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, errors.NewValidationError("结束时间不能早于开始时间")
	}
	if q.MinAmount != nil && q.MaxAmount != nil && q.MaxAmount.LessThan(*q.MinAmount) {
		return nil, errors.NewValidationError("最大金额不能小于最小金额")
	}

	filter := consumption.ListFilter{
		MemberID:    q.MemberID,
		PackID:      q.PackID,
		RechargeID:  q.RechargeID,
		OperatorID:  q.OperatorID,
		PaymentType: q.PaymentType,
		Search:      q.Search,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		MinAmount:   q.MinAmount,
		MaxAmount:   q.MaxAmount,
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
	}
	if q.State != "" {
		state, err := vo.ParseConsumptionState(q.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = &state
	}

	consumptions, total, err := uc.consumptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list consumptions", "error", err)
		return nil, err
	}

	items, err := uc.enricher.enrich(ctx, consumptions)
	if err != nil {
		uc.logger.Errorw("failed to load consumption relations", "error", err)
		return nil, err
	}

	return &ListConsumptionsResult{
		Consumptions: items,
		Total:        total,
		Page:         max(q.Page, 1),
		PageSize:     filter.Limit(),
	}, nil
}
