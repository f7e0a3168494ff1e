package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// ConsumeRechargeUseCase debits a recharge directly, without recording a
// consumption. Both debits are single guarded updates.
type ConsumeRechargeUseCase struct {
	rechargeRepo recharge.Repository
	logger       logger.Interface
}

func NewConsumeRechargeUseCase(rechargeRepo recharge.Repository, logger logger.Interface) *ConsumeRechargeUseCase {
	return &ConsumeRechargeUseCase{
		rechargeRepo: rechargeRepo,
		logger:       logger,
	}
}

func (uc *ConsumeRechargeUseCase) ConsumeAmount(ctx context.Context, id uint, amount decimal.Decimal) (*dto.RechargeDTO, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.CheckAmountDebit(amount); err != nil {
		return nil, err
	}

	ok, err := uc.rechargeRepo.DeductAmount(ctx, id, amount)
	if err != nil {
		uc.logger.Errorw("failed to deduct recharge amount", "recharge_id", id, "amount", amount.String(), "error", err)
		return nil, err
	}
	if !ok {
		// another debit won the race
		return nil, recharge.ErrInsufficientBalance()
	}

	uc.logger.Infow("recharge amount consumed", "recharge_id", id, "amount", amount.String())
	return uc.reload(ctx, r)
}

// ConsumeTimes spends times uses; zero or less is read as one.
func (uc *ConsumeRechargeUseCase) ConsumeTimes(ctx context.Context, id uint, times int) (*dto.RechargeDTO, error) {
	if times <= 0 {
		times = 1
	}

	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.CheckTimesDebit(times); err != nil {
		return nil, err
	}

	ok, err := uc.rechargeRepo.DeductTimes(ctx, id, times)
	if err != nil {
		uc.logger.Errorw("failed to deduct recharge times", "recharge_id", id, "times", times, "error", err)
		return nil, err
	}
	if !ok {
		return nil, recharge.ErrInsufficientTimes()
	}

	uc.logger.Infow("recharge times consumed", "recharge_id", id, "times", times)
	return uc.reload(ctx, r)
}

func (uc *ConsumeRechargeUseCase) load(ctx context.Context, id uint) (*recharge.Recharge, error) {
	r, err := uc.rechargeRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", id, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrRechargeNotFound(id)
	}
	return r, nil
}

// reload reads the debited row and persists a state the debit changed.
func (uc *ConsumeRechargeUseCase) reload(ctx context.Context, before *recharge.Recharge) (*dto.RechargeDTO, error) {
	after, err := uc.load(ctx, before.ID())
	if err != nil {
		return nil, err
	}
	if after.StateDirty() {
		if err := uc.rechargeRepo.UpdateState(ctx, after.ID(), after.State()); err != nil {
			uc.logger.Warnw("failed to persist recharge state", "recharge_id", after.ID(), "error", err)
		}
	}
	return dto.ToRechargeDTO(after), nil
}
