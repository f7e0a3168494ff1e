package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type GetConsumptionStatisticsUseCase struct {
	consumptionRepo consumption.Repository
	logger          logger.Interface
}

func NewGetConsumptionStatisticsUseCase(consumptionRepo consumption.Repository, logger logger.Interface) *GetConsumptionStatisticsUseCase {
	return &GetConsumptionStatisticsUseCase{
		consumptionRepo: consumptionRepo,
		logger:          logger,
	}
}

func (uc *GetConsumptionStatisticsUseCase) Execute(ctx context.Context, from, to *time.Time) (*dto.StatisticsDTO, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, errors.NewValidationError("结束时间不能早于开始时间")
	}

	stats, err := uc.consumptionRepo.Statistics(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to compute consumption statistics", "error", err)
		return nil, err
	}
	return &dto.StatisticsDTO{
		TotalAmount:   stats.TotalAmount,
		TotalCount:    stats.TotalCount,
		AverageAmount: stats.AverageAmount,
	}, nil
}
