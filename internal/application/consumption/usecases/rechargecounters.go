package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// RechargeCounters recomputes a recharge's usedTimes and remainingTimes from
// the consumptions that count toward usage.
type RechargeCounters struct {
	rechargeRepo    recharge.Repository
	consumptionRepo consumption.Repository
	logger          logger.Interface
	now             func() time.Time
}

func NewRechargeCounters(
	rechargeRepo recharge.Repository,
	consumptionRepo consumption.Repository,
	logger logger.Interface,
) *RechargeCounters {
	return &RechargeCounters{
		rechargeRepo:    rechargeRepo,
		consumptionRepo: consumptionRepo,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

// ActualUsage counts the consumptions of a recharge that count toward usage.
func (s *RechargeCounters) ActualUsage(ctx context.Context, rechargeID uint) (int, error) {
	count, err := s.consumptionRepo.CountUsageByRecharge(ctx, rechargeID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Recompute persists fresh counters and the re-derived state. It returns nil
// when the recharge does not exist.
func (s *RechargeCounters) Recompute(ctx context.Context, rechargeID uint) (*recharge.Recharge, error) {
	r, err := s.rechargeRepo.GetByID(ctx, rechargeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		s.logger.Warnw("recharge to reconcile not found", "recharge_id", rechargeID)
		return nil, nil
	}

	used, err := s.ActualUsage(ctx, rechargeID)
	if err != nil {
		s.logger.Errorw("failed to count recharge usage", "recharge_id", rechargeID, "error", err)
		return nil, err
	}

	r.Reconcile(used, s.now())
	if err := s.rechargeRepo.Update(ctx, r); err != nil {
		s.logger.Errorw("failed to save reconciled recharge", "recharge_id", rechargeID, "error", err)
		return nil, err
	}

	s.logger.Infow("recharge counters recomputed",
		"recharge_id", rechargeID,
		"used_times", r.UsedTimes(),
		"remaining_times", r.RemainingTimes(),
	)
	return r, nil
}
