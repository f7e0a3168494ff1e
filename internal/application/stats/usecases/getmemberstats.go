package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/stats/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// GetMemberStatsUseCase counts active members: all created up to the end of
// the window, and those created inside it.
type GetMemberStatsUseCase struct {
	memberRepo member.Repository
	cache      StatsCache
	cacheTTL   time.Duration
	logger     logger.Interface
	now        func() time.Time
}

func NewGetMemberStatsUseCase(
	memberRepo member.Repository,
	cache StatsCache,
	cacheTTL time.Duration,
	logger logger.Interface,
) *GetMemberStatsUseCase {
	return &GetMemberStatsUseCase{
		memberRepo: memberRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *GetMemberStatsUseCase) Execute(ctx context.Context, q StatsQuery) (*dto.MemberStatsDTO, error) {
	r, err := resolveRange(q, uc.now())
	if err != nil {
		return nil, err
	}

	key := r.cacheKey("member")
	var cached dto.MemberStatsDTO
	if hit := readCache(ctx, uc.cache, key, &cached, uc.logger); hit {
		return &cached, nil
	}

	total, err := uc.memberRepo.CountActive(ctx, nil, r.to)
	if err != nil {
		uc.logger.Errorw("failed to count members", "period", r.period, "error", err)
		return nil, err
	}
	from := r.from
	created, err := uc.memberRepo.CountActive(ctx, &from, r.to)
	if err != nil {
		uc.logger.Errorw("failed to count new members", "period", r.period, "error", err)
		return nil, err
	}

	result := &dto.MemberStatsDTO{
		TotalCount: total,
		NewCount:   created,
		Period:     r.period,
		StartDate:  biztime.FormatBizDate(r.from),
		EndDate:    biztime.FormatBizDate(r.to),
	}
	writeCache(ctx, uc.cache, key, result, uc.cacheTTL, uc.logger)
	return result, nil
}
