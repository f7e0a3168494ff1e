package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type RemoveConsumptionUseCase struct {
	consumptionRepo consumption.Repository
	counters        *RechargeCounters
	txManager       TransactionManager
	logger          logger.Interface
}

func NewRemoveConsumptionUseCase(
	consumptionRepo consumption.Repository,
	counters *RechargeCounters,
	txManager TransactionManager,
	logger logger.Interface,
) *RemoveConsumptionUseCase {
	return &RemoveConsumptionUseCase{
		consumptionRepo: consumptionRepo,
		counters:        counters,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute soft-deletes the consumption and gives its use back to the linked
// recharge.
func (uc *RemoveConsumptionUseCase) Execute(ctx context.Context, consumptionID uint) error {
	uc.logger.Infow("executing remove consumption use case", "consumption_id", consumptionID)

	c, err := uc.consumptionRepo.GetByID(ctx, consumptionID)
	if err != nil {
		uc.logger.Errorw("failed to get consumption", "consumption_id", consumptionID, "error", err)
		return err
	}
	if c == nil {
		return consumption.ErrConsumptionNotFound(consumptionID)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.consumptionRepo.Delete(txCtx, consumptionID); err != nil {
			return err
		}
		if c.RechargeID() != nil {
			if _, err := uc.counters.Recompute(txCtx, *c.RechargeID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to remove consumption", "consumption_id", consumptionID, "error", err)
		return err
	}

	uc.logger.Infow("consumption removed successfully",
		"consumption_id", consumptionID,
		"recharge_id", c.RechargeID(),
	)
	return nil
}
