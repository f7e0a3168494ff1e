package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type GetRechargeStatisticsUseCase struct {
	rechargeRepo recharge.Repository
	logger       logger.Interface
}

func NewGetRechargeStatisticsUseCase(rechargeRepo recharge.Repository, logger logger.Interface) *GetRechargeStatisticsUseCase {
	return &GetRechargeStatisticsUseCase{
		rechargeRepo: rechargeRepo,
		logger:       logger,
	}
}

// Execute aggregates recharge amounts by recharge time. Either bound may be nil.
func (uc *GetRechargeStatisticsUseCase) Execute(ctx context.Context, from, to *time.Time) (*dto.StatisticsDTO, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, errors.NewValidationError("结束时间不能早于开始时间")
	}

	stats, err := uc.rechargeRepo.Statistics(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to get recharge statistics", "error", err)
		return nil, err
	}
	return dto.ToStatisticsDTO(stats), nil
}
