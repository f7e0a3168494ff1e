package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/stats/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// GetRechargeStatsUseCase sums non-disabled recharges created in the window.
type GetRechargeStatsUseCase struct {
	rechargeRepo recharge.Repository
	cache        StatsCache
	cacheTTL     time.Duration
	logger       logger.Interface
	now          func() time.Time
}

func NewGetRechargeStatsUseCase(
	rechargeRepo recharge.Repository,
	cache StatsCache,
	cacheTTL time.Duration,
	logger logger.Interface,
) *GetRechargeStatsUseCase {
	return &GetRechargeStatsUseCase{
		rechargeRepo: rechargeRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *GetRechargeStatsUseCase) Execute(ctx context.Context, q StatsQuery) (*dto.RechargeStatsDTO, error) {
	r, err := resolveRange(q, uc.now())
	if err != nil {
		return nil, err
	}

	key := r.cacheKey("recharge")
	var cached dto.RechargeStatsDTO
	if hit := readCache(ctx, uc.cache, key, &cached, uc.logger); hit {
		return &cached, nil
	}

	stats, err := uc.rechargeRepo.SumCreated(ctx, r.from, r.to)
	if err != nil {
		uc.logger.Errorw("failed to compute recharge stats", "period", r.period, "error", err)
		return nil, err
	}

	result := &dto.RechargeStatsDTO{
		TotalAmount: stats.TotalAmount,
		TotalCount:  stats.TotalCount,
		Period:      r.period,
		StartDate:   biztime.FormatBizDate(r.from),
		EndDate:     biztime.FormatBizDate(r.to),
	}
	writeCache(ctx, uc.cache, key, result, uc.cacheTTL, uc.logger)
	return result, nil
}

func readCache(ctx context.Context, cache StatsCache, key string, dest interface{}, log logger.Interface) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		log.Warnw("failed to read stats cache", "key", key, "error", err)
		return false
	}
	return hit
}

func writeCache(ctx context.Context, cache StatsCache, key string, value interface{}, ttl time.Duration, log logger.Interface) {
	if cache == nil || ttl <= 0 {
		return
	}
	if err := cache.Set(ctx, key, value, ttl); err != nil {
		log.Warnw("failed to write stats cache", "key", key, "error", err)
	}
}
