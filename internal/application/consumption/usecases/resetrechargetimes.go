package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/constants"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// ResetRechargeTimesUseCase rebuilds recharge counters from consumption
// history, for one recharge, a list of them, or every recharge.
type ResetRechargeTimesUseCase struct {
	rechargeRepo recharge.Repository
	counters     *RechargeCounters
	publisher    events.EventPublisher
	logger       logger.Interface
	batchSize    int
	now          func() time.Time
}

func NewResetRechargeTimesUseCase(
	rechargeRepo recharge.Repository,
	counters *RechargeCounters,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ResetRechargeTimesUseCase {
	return &ResetRechargeTimesUseCase{
		rechargeRepo: rechargeRepo,
		counters:     counters,
		publisher:    publisher,
		logger:       logger,
		batchSize:    constants.ReconcileBatchSize,
		now:          biztime.NowUTC,
	}
}

func (uc *ResetRechargeTimesUseCase) SetBatchSize(size int) {
	if size > 0 {
		uc.batchSize = size
	}
}

func (uc *ResetRechargeTimesUseCase) Reset(ctx context.Context, rechargeID uint) (*dto.RechargeCountersDTO, error) {
	uc.logger.Infow("executing reset recharge times use case", "recharge_id", rechargeID)

	r, err := uc.reset(ctx, rechargeID)
	if err != nil {
		return nil, err
	}
	return &dto.RechargeCountersDTO{
		RechargeID:     r.ID(),
		UsedTimes:      r.UsedTimes(),
		RemainingTimes: r.RemainingTimes(),
		State:          r.State().String(),
	}, nil
}

func (uc *ResetRechargeTimesUseCase) ResetBatch(ctx context.Context, rechargeIDs []uint) (*dto.BatchResetResultDTO, error) {
	uc.logger.Infow("executing batch reset recharge times use case", "count", len(rechargeIDs))

	if len(rechargeIDs) == 0 {
		return nil, errors.NewValidationError("充值记录ID列表不能为空")
	}

	result := &dto.BatchResetResultDTO{
		FailedIDs: []uint{},
		Results:   make([]dto.BatchResetItemDTO, 0, len(rechargeIDs)),
	}
	for _, rechargeID := range rechargeIDs {
		item := dto.BatchResetItemDTO{RechargeID: rechargeID, Success: true}
		if _, err := uc.reset(ctx, rechargeID); err != nil {
			item.Success = false
			item.Error = errorMessage(err)
			result.FailedIDs = append(result.FailedIDs, rechargeID)
		} else {
			result.UpdatedCount++
		}
		result.Results = append(result.Results, item)
	}

	uc.logger.Infow("batch reset recharge times completed",
		"updated", result.UpdatedCount,
		"failed", len(result.FailedIDs),
	)
	return result, nil
}

// ResetAll walks every non-deleted recharge in id order. A failure on one
// recharge is recorded and the walk continues.
func (uc *ResetRechargeTimesUseCase) ResetAll(ctx context.Context) (*dto.ResetAllResultDTO, error) {
	uc.logger.Infow("executing reset all recharge times use case", "batch_size", uc.batchSize)

	result := &dto.ResetAllResultDTO{FailedIDs: []uint{}}
	var afterID uint
	for {
		ids, err := uc.rechargeRepo.ListIDsAfter(ctx, afterID, uc.batchSize)
		if err != nil {
			uc.logger.Errorw("failed to list recharge ids", "after_id", afterID, "error", err)
			return nil, err
		}
		if len(ids) == 0 {
			break
		}
		for _, rechargeID := range ids {
			if _, err := uc.reset(ctx, rechargeID); err != nil {
				result.FailedIDs = append(result.FailedIDs, rechargeID)
				continue
			}
			result.UpdatedCount++
		}
		afterID = ids[len(ids)-1]
		if len(ids) < uc.batchSize {
			break
		}
	}

	result.Success = len(result.FailedIDs) == 0
	if result.Success {
		result.Message = fmt.Sprintf("已重置 %d 条充值记录的次数统计", result.UpdatedCount)
	} else {
		result.Message = fmt.Sprintf("重置完成: 成功 %d 条，失败 %d 条", result.UpdatedCount, len(result.FailedIDs))
	}

	uc.logger.Infow("reset all recharge times completed",
		"updated", result.UpdatedCount,
		"failed", len(result.FailedIDs),
	)
	return result, nil
}

func (uc *ResetRechargeTimesUseCase) reset(ctx context.Context, rechargeID uint) (*recharge.Recharge, error) {
	r, err := uc.counters.Recompute(ctx, rechargeID)
	if err != nil {
		uc.logger.Errorw("failed to reset recharge times", "recharge_id", rechargeID, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrRechargeNotFound(rechargeID)
	}

	if err := uc.publisher.Publish(ctx, events.NewRechargeCountersReset(rechargeID, uc.now())); err != nil {
		uc.logger.Warnw("failed to publish accounting event", "recharge_id", rechargeID, "error", err)
	}
	return r, nil
}

func errorMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
