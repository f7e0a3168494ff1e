package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// RemoveRechargeUseCase soft-deletes a recharge and refreshes the sales
// count of its pack in the same transaction.
type RemoveRechargeUseCase struct {
	rechargeRepo   recharge.Repository
	salesRecounter SalesRecounter
	txManager      TransactionManager
	logger         logger.Interface
}

func NewRemoveRechargeUseCase(
	rechargeRepo recharge.Repository,
	salesRecounter SalesRecounter,
	txManager TransactionManager,
	logger logger.Interface,
) *RemoveRechargeUseCase {
	return &RemoveRechargeUseCase{
		rechargeRepo:   rechargeRepo,
		salesRecounter: salesRecounter,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *RemoveRechargeUseCase) Execute(ctx context.Context, id uint) error {
	r, err := uc.rechargeRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", id, "error", err)
		return err
	}
	if r == nil {
		return recharge.ErrRechargeNotFound(id)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.rechargeRepo.Delete(txCtx, id); err != nil {
			return err
		}
		if r.PackID() != nil {
			if _, err := uc.salesRecounter.Execute(txCtx, *r.PackID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to remove recharge", "recharge_id", id, "error", err)
		return err
	}

	uc.logger.Infow("recharge removed", "recharge_id", id, "pack_id", r.PackID())
	return nil
}
