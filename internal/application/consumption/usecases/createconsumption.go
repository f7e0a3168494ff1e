package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/id"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type CreateConsumptionCommand struct {
	MemberID      *uint
	RechargeID    *uint
	PackID        *uint
	CustomerName  string
	CustomerPhone string
	Amount        decimal.Decimal
	PaymentType   string
	Seq           string
	State         string
	ConsumptionAt *time.Time
	OperatorID    *uint
	Remark        string
	Payload       map[string]interface{}
}

// CreateConsumptionUseCase records a spend. When the consumption ties to a
// recharge the recharge must be consumable, and one use is applied after the
// row is stored.
type CreateConsumptionUseCase struct {
	consumptionRepo consumption.Repository
	rechargeRepo    recharge.Repository
	memberRepo      member.Repository
	publisher       events.EventPublisher
	logger          logger.Interface
	now             func() time.Time
}

func NewCreateConsumptionUseCase(
	consumptionRepo consumption.Repository,
	rechargeRepo recharge.Repository,
	memberRepo member.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateConsumptionUseCase {
	return &CreateConsumptionUseCase{
		consumptionRepo: consumptionRepo,
		rechargeRepo:    rechargeRepo,
		memberRepo:      memberRepo,
		publisher:       publisher,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *CreateConsumptionUseCase) Execute(ctx context.Context, cmd CreateConsumptionCommand) (*dto.ConsumptionDTO, error) {
	uc.logger.Infow("executing create consumption use case",
		"member_id", cmd.MemberID,
		"recharge_id", cmd.RechargeID,
	)

	state, err := vo.ParseConsumptionState(cmd.State)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := uc.now()
	var consumptionAt *time.Time
	if cmd.ConsumptionAt != nil {
		at := cmd.ConsumptionAt.UTC()
		consumptionAt = &at
	}

	c, err := consumption.NewConsumption(consumption.NewConsumptionParams{
		MemberID:      cmd.MemberID,
		RechargeID:    cmd.RechargeID,
		PackID:        cmd.PackID,
		CustomerName:  cmd.CustomerName,
		CustomerPhone: cmd.CustomerPhone,
		Amount:        cmd.Amount,
		PaymentType:   cmd.PaymentType,
		Seq:           cmd.Seq,
		State:         state,
		ConsumptionAt: consumptionAt,
		OperatorID:    cmd.OperatorID,
		Remark:        cmd.Remark,
		Payload:       cmd.Payload,
	}, now)
	if err != nil {
		return nil, err
	}

	if filled, err := uc.fillCustomer(ctx, c); err != nil {
		uc.logger.Warnw("failed to enrich consumption with member info",
			"member_id", c.MemberID(),
			"error", err,
		)
	} else if filled {
		uc.logger.Debugw("consumption customer info filled from member", "member_id", c.MemberID())
	}

	if err := uc.autoSelect(ctx, c, now); err != nil {
		uc.logger.Warnw("failed to auto-select recharge for consumption",
			"member_id", c.MemberID(),
			"error", err,
		)
	}

	var target *recharge.Recharge
	if c.RechargeID() != nil {
		target, err = uc.ensureConsumable(ctx, *c.RechargeID(), now)
		if err != nil {
			return nil, err
		}
	}

	c.SetSeq(id.NewSeq())
	if err := uc.consumptionRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create consumption", "error", err)
		return nil, err
	}

	uc.logger.Infow("consumption created successfully",
		"consumption_id", c.ID(),
		"recharge_id", c.RechargeID(),
		"state", c.State(),
	)

	if target != nil && c.CountsTowardUsage() {
		uc.applyUsage(ctx, c, target)
	}

	if err := uc.publisher.Publish(ctx, events.NewConsumptionCreated(c.ID(), c.RechargeID(), c.MemberID(), now)); err != nil {
		uc.logger.Warnw("failed to publish accounting event", "consumption_id", c.ID(), "error", err)
	}

	return dto.ToConsumptionDTO(c), nil
}

// fillCustomer copies the member's name and phone into empty snapshot fields.
func (uc *CreateConsumptionUseCase) fillCustomer(ctx context.Context, c *consumption.Consumption) (bool, error) {
	if !c.NeedsCustomerInfo() {
		return false, nil
	}
	m, err := uc.memberRepo.GetByID(ctx, *c.MemberID())
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, member.ErrMemberNotFound(*c.MemberID())
	}
	return c.FillCustomer(m.Name(), m.Phone()), nil
}

func (uc *CreateConsumptionUseCase) autoSelect(ctx context.Context, c *consumption.Consumption, now time.Time) error {
	if !c.NeedsAutoSelect() {
		return nil
	}
	r, err := uc.rechargeRepo.FindAutoSelectable(ctx, *c.MemberID(), now)
	if err != nil {
		return err
	}
	if r == nil {
		uc.logger.Debugw("no recharge eligible for auto-selection", "member_id", c.MemberID())
		return nil
	}
	c.AttachRecharge(r.ID(), r.PackID())
	uc.logger.Infow("recharge auto-selected for consumption",
		"member_id", c.MemberID(),
		"recharge_id", r.ID(),
	)
	return nil
}

// ensureConsumable loads the linked recharge and rejects it when it cannot
// be consumed, persisting a newly derived expired or completed state first.
func (uc *CreateConsumptionUseCase) ensureConsumable(ctx context.Context, rechargeID uint, now time.Time) (*recharge.Recharge, error) {
	r, err := uc.rechargeRepo.GetByID(ctx, rechargeID)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", rechargeID, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrLinkedRechargeMissing()
	}

	changed, consumableErr := r.EnsureConsumable(now)
	if changed {
		if err := uc.rechargeRepo.UpdateState(ctx, r.ID(), r.State()); err != nil {
			uc.logger.Errorw("failed to persist recharge state", "recharge_id", r.ID(), "error", err)
			return nil, err
		}
	}
	if consumableErr != nil {
		uc.logger.Warnw("recharge not consumable",
			"recharge_id", r.ID(),
			"state", r.State(),
			"error", consumableErr,
		)
		return nil, consumableErr
	}
	return r, nil
}

// applyUsage runs after the consumption is stored. Failures are logged only;
// reconciliation repairs any drift.
func (uc *CreateConsumptionUseCase) applyUsage(ctx context.Context, c *consumption.Consumption, target *recharge.Recharge) {
	rechargeID := target.ID()

	applied, err := uc.rechargeRepo.IncrementUsage(ctx, rechargeID)
	if err != nil {
		uc.logger.Errorw("failed to apply consumption usage",
			"consumption_id", c.ID(),
			"recharge_id", rechargeID,
			"error", err,
		)
		return
	}
	if !applied {
		uc.logger.Warnw("recharge usage not applied, no remaining times",
			"consumption_id", c.ID(),
			"recharge_id", rechargeID,
		)
		return
	}

	after, err := uc.rechargeRepo.GetByID(ctx, rechargeID)
	if err != nil || after == nil {
		uc.logger.Errorw("failed to reload recharge after usage",
			"consumption_id", c.ID(),
			"recharge_id", rechargeID,
			"error", err,
		)
		return
	}
	if !after.StateDirty() {
		return
	}
	if err := uc.rechargeRepo.UpdateState(ctx, rechargeID, after.State()); err != nil {
		uc.logger.Errorw("failed to persist recharge state after usage",
			"consumption_id", c.ID(),
			"recharge_id", rechargeID,
			"error", err,
		)
	}
}
