package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	consumptionvo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/constants"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/id"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type CreateRechargeCommand struct {
	MemberID        uint
	PackID          *uint
	PackageName     string
	Type            string
	RechargeAmount  *decimal.Decimal
	BonusAmount     *decimal.Decimal
	TotalAmount     *decimal.Decimal
	RemainingAmount *decimal.Decimal
	TotalTimes      *int
	UsedTimes       *int
	RemainingTimes  *int
	ValidityDays    *int
	PaymentType     string
	Seq             string
	State           string
	RechargeAt      *time.Time
	OperatorID      *uint
	Remark          string
	Payload         map[string]interface{}
}

type CreateRechargeUseCase struct {
	rechargeRepo        recharge.Repository
	consumptionRepo     consumption.Repository
	memberRepo          member.Repository
	packRepo            pack.Repository
	salesRecounter      SalesRecounter
	txManager           TransactionManager
	publisher           events.EventPublisher
	logger              logger.Interface
	defaultValidityDays int
	now                 func() time.Time
}

func NewCreateRechargeUseCase(
	rechargeRepo recharge.Repository,
	consumptionRepo consumption.Repository,
	memberRepo member.Repository,
	packRepo pack.Repository,
	salesRecounter SalesRecounter,
	txManager TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateRechargeUseCase {
	return &CreateRechargeUseCase{
		rechargeRepo:        rechargeRepo,
		consumptionRepo:     consumptionRepo,
		memberRepo:          memberRepo,
		packRepo:            packRepo,
		salesRecounter:      salesRecounter,
		txManager:           txManager,
		publisher:           publisher,
		logger:              logger,
		defaultValidityDays: constants.DefaultValidityDays,
		now:                 biztime.NowUTC,
	}
}

// SetDefaultValidityDays overrides the fallback validity used when neither
// the request nor the pack sets one.
func (uc *CreateRechargeUseCase) SetDefaultValidityDays(days int) {
	if days > 0 {
		uc.defaultValidityDays = days
	}
}

func (uc *CreateRechargeUseCase) Execute(ctx context.Context, cmd CreateRechargeCommand) (*dto.RechargeDTO, error) {
	uc.logger.Infow("executing create recharge use case", "member_id", cmd.MemberID, "pack_id", cmd.PackID)

	if cmd.MemberID == 0 {
		return nil, errors.NewValidationError("会员ID不能为空")
	}

	m, err := uc.memberRepo.GetByID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "member_id", cmd.MemberID, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound(cmd.MemberID)
	}

	var p *pack.Pack
	if cmd.PackID != nil {
		p, err = uc.packRepo.GetByID(ctx, *cmd.PackID)
		if err != nil {
			uc.logger.Errorw("failed to get pack", "pack_id", *cmd.PackID, "error", err)
			return nil, err
		}
		if p == nil {
			return nil, pack.ErrPackNotFound(*cmd.PackID)
		}
	}

	params, err := uc.buildParams(cmd, p)
	if err != nil {
		return nil, err
	}

	r, err := recharge.NewRecharge(params)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	r.PrepareForSave(now)

	var redemption *consumption.Consumption
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.rechargeRepo.Create(txCtx, r); err != nil {
			return err
		}

		if p != nil && p.PackType().IsNormal() {
			c, err := uc.redeemInFull(txCtx, r, now)
			if err != nil {
				return err
			}
			redemption = c
		}

		if p != nil {
			if _, err := uc.salesRecounter.Execute(txCtx, p.ID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create recharge", "member_id", cmd.MemberID, "error", err)
		return nil, err
	}

	uc.logger.Infow("recharge created successfully",
		"recharge_id", r.ID(),
		"member_id", r.MemberID(),
		"state", r.State(),
	)

	uc.publish(ctx, events.NewRechargeCreated(r.ID(), r.MemberID(), now))
	if redemption != nil {
		rechargeID := r.ID()
		memberID := r.MemberID()
		uc.publish(ctx, events.NewConsumptionCreated(redemption.ID(), &rechargeID, &memberID, now))
	}

	return dto.ToRechargeDTO(r), nil
}

func (uc *CreateRechargeUseCase) buildParams(cmd CreateRechargeCommand, p *pack.Pack) (recharge.NewRechargeParams, error) {
	rechargeAt := uc.now()
	if cmd.RechargeAt != nil && !cmd.RechargeAt.IsZero() {
		rechargeAt = cmd.RechargeAt.UTC()
	}

	totalTimes := cmd.TotalTimes
	packageName := cmd.PackageName
	if p != nil {
		if totalTimes == nil && p.TotalTimes() != nil {
			inherited := *p.TotalTimes()
			totalTimes = &inherited
		}
		if packageName == "" {
			packageName = p.Name()
		}
	}

	startDate := biztime.BusinessDate(rechargeAt)
	validity := uc.defaultValidityDays
	switch {
	case cmd.ValidityDays != nil && *cmd.ValidityDays > 0:
		validity = *cmd.ValidityDays
	case p != nil && p.ValidDay() > 0:
		validity = p.ValidDay()
	}

	var state vo.RechargeState
	if cmd.State != "" {
		parsed, err := vo.ParseRechargeState(cmd.State)
		if err != nil {
			return recharge.NewRechargeParams{}, errors.NewValidationError(err.Error())
		}
		state = parsed
	}

	var rechargeType vo.RechargeType
	if cmd.Type != "" {
		parsed, err := vo.ParseRechargeType(cmd.Type)
		if err != nil {
			return recharge.NewRechargeParams{}, errors.NewValidationError(err.Error())
		}
		rechargeType = parsed
	}

	seq := cmd.Seq
	if seq == "" {
		seq = id.NewSeq()
	}

	return recharge.NewRechargeParams{
		MemberID:        cmd.MemberID,
		PackID:          cmd.PackID,
		PackageName:     packageName,
		Type:            rechargeType,
		RechargeAmount:  cmd.RechargeAmount,
		BonusAmount:     cmd.BonusAmount,
		TotalAmount:     cmd.TotalAmount,
		RemainingAmount: cmd.RemainingAmount,
		TotalTimes:      totalTimes,
		UsedTimes:       cmd.UsedTimes,
		RemainingTimes:  cmd.RemainingTimes,
		StartDate:       startDate,
		EndDate:         biztime.AddDays(startDate, validity),
		ValidityDays:    cmd.ValidityDays,
		PaymentType:     cmd.PaymentType,
		Seq:             seq,
		RechargeAt:      rechargeAt,
		OperatorID:      cmd.OperatorID,
		Remark:          cmd.Remark,
		Payload:         cmd.Payload,
		State:           state,
	}, nil
}

// redeemInFull records the single consumption of a normal pack and applies
// its use to the new recharge.
func (uc *CreateRechargeUseCase) redeemInFull(ctx context.Context, r *recharge.Recharge, now time.Time) (*consumption.Consumption, error) {
	memberID := r.MemberID()
	rechargeID := r.ID()
	rechargeAt := r.RechargeAt()

	c, err := consumption.NewConsumption(consumption.NewConsumptionParams{
		MemberID:      &memberID,
		RechargeID:    &rechargeID,
		PackID:        r.PackID(),
		Amount:        r.TotalAmount(),
		PaymentType:   r.PaymentType(),
		Seq:           id.NewSeq(),
		State:         consumptionvo.StateCompleted,
		ConsumptionAt: &rechargeAt,
		OperatorID:    r.OperatorID(),
	}, now)
	if err != nil {
		return nil, err
	}
	if err := uc.consumptionRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	r.ApplyUsage(now)
	if err := uc.rechargeRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	uc.logger.Infow("normal pack redeemed on recharge",
		"recharge_id", rechargeID,
		"consumption_id", c.ID(),
	)
	return c, nil
}

func (uc *CreateRechargeUseCase) publish(ctx context.Context, event events.AccountingEvent) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warnw("failed to publish accounting event", "type", event.Type, "error", err)
	}
}
