package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// UpdateConsumptionCommand carries a partial edit. Nil fields are untouched.
type UpdateConsumptionCommand struct {
	ID            uint
	MemberID      *uint
	RechargeID    *uint
	PackID        *uint
	CustomerName  *string
	CustomerPhone *string
	Amount        *decimal.Decimal
	PaymentType   *string
	State         *string
	ConsumptionAt *time.Time
	OperatorID    *uint
	Remark        *string
	Payload       map[string]interface{}
}

// UpdateConsumptionUseCase edits a consumption and recomputes the counters
// of every recharge the edit touched, in one transaction.
type UpdateConsumptionUseCase struct {
	consumptionRepo consumption.Repository
	rechargeRepo    recharge.Repository
	counters        *RechargeCounters
	txManager       TransactionManager
	logger          logger.Interface
	now             func() time.Time
}

func NewUpdateConsumptionUseCase(
	consumptionRepo consumption.Repository,
	rechargeRepo recharge.Repository,
	counters *RechargeCounters,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateConsumptionUseCase {
	return &UpdateConsumptionUseCase{
		consumptionRepo: consumptionRepo,
		rechargeRepo:    rechargeRepo,
		counters:        counters,
		txManager:       txManager,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *UpdateConsumptionUseCase) Execute(ctx context.Context, cmd UpdateConsumptionCommand) (*dto.ConsumptionDTO, error) {
	uc.logger.Infow("executing update consumption use case", "consumption_id", cmd.ID)

	c, err := uc.consumptionRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get consumption", "consumption_id", cmd.ID, "error", err)
		return nil, err
	}
	if c == nil {
		return nil, consumption.ErrConsumptionNotFound(cmd.ID)
	}

	params := consumption.UpdateParams{
		MemberID:      cmd.MemberID,
		RechargeID:    cmd.RechargeID,
		PackID:        cmd.PackID,
		CustomerName:  cmd.CustomerName,
		CustomerPhone: cmd.CustomerPhone,
		Amount:        cmd.Amount,
		PaymentType:   cmd.PaymentType,
		OperatorID:    cmd.OperatorID,
		Remark:        cmd.Remark,
		Payload:       cmd.Payload,
	}
	if cmd.State != nil {
		state, err := vo.ParseConsumptionState(*cmd.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.State = &state
	}
	if cmd.ConsumptionAt != nil {
		at := cmd.ConsumptionAt.UTC()
		params.ConsumptionAt = &at
	}

	var previous *uint
	if c.RechargeID() != nil {
		id := *c.RechargeID()
		previous = &id
	}
	rechargeChanged := cmd.RechargeID != nil && (previous == nil || *previous != *cmd.RechargeID)

	if rechargeChanged {
		target, err := uc.rechargeRepo.GetByID(ctx, *cmd.RechargeID)
		if err != nil {
			uc.logger.Errorw("failed to get recharge", "recharge_id", *cmd.RechargeID, "error", err)
			return nil, err
		}
		if target == nil {
			return nil, recharge.ErrLinkedRechargeMissing()
		}
	}

	if err := c.Update(params, uc.now()); err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.consumptionRepo.Update(txCtx, c); err != nil {
			return err
		}
		if rechargeChanged && previous != nil {
			if _, err := uc.counters.Recompute(txCtx, *previous); err != nil {
				return err
			}
		}
		if c.RechargeID() != nil {
			if _, err := uc.counters.Recompute(txCtx, *c.RechargeID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update consumption", "consumption_id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("consumption updated successfully",
		"consumption_id", c.ID(),
		"recharge_id", c.RechargeID(),
		"previous_recharge_id", previous,
	)
	return dto.ToConsumptionDTO(c), nil
}
