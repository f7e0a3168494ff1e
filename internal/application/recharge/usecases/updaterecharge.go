package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// UpdateRechargeCommand is a partial update. Nil fields are left untouched.
type UpdateRechargeCommand struct {
	ID              uint
	PackageName     *string
	RechargeAmount  *decimal.Decimal
	BonusAmount     *decimal.Decimal
	RemainingAmount *decimal.Decimal
	TotalTimes      *int
	UsedTimes       *int
	StartDate       *time.Time
	EndDate         *time.Time
	PaymentType     *string
	State           *string
	OperatorID      *uint
	Remark          *string
	Payload         map[string]interface{}
}

type UpdateRechargeUseCase struct {
	rechargeRepo recharge.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewUpdateRechargeUseCase(rechargeRepo recharge.Repository, logger logger.Interface) *UpdateRechargeUseCase {
	return &UpdateRechargeUseCase{
		rechargeRepo: rechargeRepo,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *UpdateRechargeUseCase) Execute(ctx context.Context, cmd UpdateRechargeCommand) (*dto.RechargeDTO, error) {
	uc.logger.Infow("executing update recharge use case", "recharge_id", cmd.ID)

	r, err := uc.rechargeRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", cmd.ID, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrRechargeNotFound(cmd.ID)
	}

	if err := r.UpdateAmounts(cmd.RechargeAmount, cmd.BonusAmount); err != nil {
		return nil, err
	}
	if cmd.RemainingAmount != nil {
		if err := r.SetRemainingAmount(*cmd.RemainingAmount); err != nil {
			return nil, err
		}
	}
	if err := r.UpdateCounters(cmd.TotalTimes, cmd.UsedTimes); err != nil {
		return nil, err
	}
	if err := r.UpdateValidity(cmd.StartDate, cmd.EndDate); err != nil {
		return nil, err
	}
	if cmd.State != nil {
		state, err := vo.ParseRechargeState(*cmd.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		r.SetState(state)
	}
	r.UpdateDetails(cmd.PackageName, cmd.PaymentType, cmd.Remark, cmd.OperatorID, cmd.Payload)

	r.PrepareForSave(uc.now())

	if err := uc.rechargeRepo.Update(ctx, r); err != nil {
		uc.logger.Errorw("failed to update recharge", "recharge_id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("recharge updated successfully", "recharge_id", cmd.ID, "state", r.State())
	return dto.ToRechargeDTO(r), nil
}
