package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type ListRechargesQuery struct {
	Search   string
	MemberID *uint
	PackID   *uint
	State    string
	Page     int
	PageSize int
}

type ListRechargesResult struct {
	Recharges []*dto.RechargeDTO
	Total     int64
	Page      int
	PageSize  int
}

// ListRechargesUseCase lists recharges newest first. Every item carries its
// derived state.
type ListRechargesUseCase struct {
	rechargeRepo recharge.Repository
	logger       logger.Interface
}

func NewListRechargesUseCase(rechargeRepo recharge.Repository, logger logger.Interface) *ListRechargesUseCase {
	return &ListRechargesUseCase{
		rechargeRepo: rechargeRepo,
		logger:       logger,
	}
}

func (uc *ListRechargesUseCase) Execute(ctx context.Context, q ListRechargesQuery) (*ListRechargesResult, error) {
	filter := recharge.ListFilter{
		Search:   q.Search,
		MemberID: q.MemberID,
		PackID:   q.PackID,
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		},
	}
	if q.State != "" {
		state, err := vo.ParseRechargeState(q.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = &state
	}

	recharges, total, err := uc.rechargeRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list recharges", "error", err)
		return nil, err
	}

	return &ListRechargesResult{
		Recharges: dto.ToRechargeDTOList(recharges),
		Total:     total,
		Page:      max(q.Page, 1),
		PageSize:  filter.Limit(),
	}, nil
}
