package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// VerifyRechargeTimesUseCase compares stored counters with the consumption
// history without writing anything.
type VerifyRechargeTimesUseCase struct {
	rechargeRepo recharge.Repository
	counters     *RechargeCounters
	logger       logger.Interface
}

func NewVerifyRechargeTimesUseCase(
	rechargeRepo recharge.Repository,
	counters *RechargeCounters,
	logger logger.Interface,
) *VerifyRechargeTimesUseCase {
	return &VerifyRechargeTimesUseCase{
		rechargeRepo: rechargeRepo,
		counters:     counters,
		logger:       logger,
	}
}

func (uc *VerifyRechargeTimesUseCase) Execute(ctx context.Context, rechargeID uint) (*dto.VerifyResultDTO, error) {
	r, err := uc.rechargeRepo.GetByID(ctx, rechargeID)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", rechargeID, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrRechargeNotFound(rechargeID)
	}

	actual, err := uc.counters.ActualUsage(ctx, rechargeID)
	if err != nil {
		uc.logger.Errorw("failed to count recharge usage", "recharge_id", rechargeID, "error", err)
		return nil, err
	}
	_, calculated := recharge.ExpectedCounters(r.TotalTimes(), actual)

	result := &dto.VerifyResultDTO{
		RechargeID:               r.ID(),
		TotalTimes:               r.TotalTimes(),
		CurrentUsedTimes:         r.UsedTimes(),
		CurrentRemainingTimes:    r.RemainingTimes(),
		ActualUsedTimes:          actual,
		CalculatedRemainingTimes: calculated,
		IsCorrect:                r.CountersMatch(actual),
	}
	if result.IsCorrect {
		result.Message = "次数统计正确"
		return result, nil
	}

	result.Message = fmt.Sprintf("次数统计错误: 已使用次数应为 %d，剩余次数应为 %s", actual, formatTimes(calculated))
	uc.logger.Warnw("recharge counters drifted",
		"recharge_id", rechargeID,
		"used_times", r.UsedTimes(),
		"actual_used_times", actual,
	)
	return result, nil
}

func formatTimes(times *int) string {
	if times == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *times)
}
