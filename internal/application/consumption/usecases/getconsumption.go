package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type GetConsumptionUseCase struct {
	consumptionRepo consumption.Repository
	enricher        *enricher
	logger          logger.Interface
}

func NewGetConsumptionUseCase(
	consumptionRepo consumption.Repository,
	rechargeRepo recharge.Repository,
	packRepo pack.Repository,
	logger logger.Interface,
) *GetConsumptionUseCase {
	return &GetConsumptionUseCase{
		consumptionRepo: consumptionRepo,
		enricher:        &enricher{rechargeRepo: rechargeRepo, packRepo: packRepo},
		logger:          logger,
	}
}

func (uc *GetConsumptionUseCase) Execute(ctx context.Context, consumptionID uint) (*dto.ConsumptionDTO, error) {
	c, err := uc.consumptionRepo.GetByID(ctx, consumptionID)
	if err != nil {
		uc.logger.Errorw("failed to get consumption", "consumption_id", consumptionID, "error", err)
		return nil, err
	}
	if c == nil {
		return nil, consumption.ErrConsumptionNotFound(consumptionID)
	}

	items, err := uc.enricher.enrich(ctx, []*consumption.Consumption{c})
	if err != nil {
		uc.logger.Errorw("failed to load consumption relations", "consumption_id", consumptionID, "error", err)
		return nil, err
	}
	return items[0], nil
}
