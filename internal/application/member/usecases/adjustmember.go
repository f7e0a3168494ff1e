package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/member/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// AdjustMemberUseCase applies signed balance and points deltas. Neither
// value may end up negative.
type AdjustMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewAdjustMemberUseCase(memberRepo member.Repository, logger logger.Interface) *AdjustMemberUseCase {
	return &AdjustMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *AdjustMemberUseCase) AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) (*dto.MemberDTO, error) {
	if delta.IsZero() {
		return nil, errors.NewValidationError("调整金额不能为0")
	}
	if err := uc.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	ok, err := uc.memberRepo.AdjustBalance(ctx, id, delta)
	if err != nil {
		uc.logger.Errorw("failed to adjust member balance", "member_id", id, "delta", delta.String(), "error", err)
		return nil, err
	}
	if !ok {
		return nil, member.ErrInsufficientBalance()
	}

	uc.logger.Infow("member balance adjusted", "member_id", id, "delta", delta.String())
	return uc.reload(ctx, id)
}

func (uc *AdjustMemberUseCase) AdjustPoints(ctx context.Context, id uint, delta int) (*dto.MemberDTO, error) {
	if delta == 0 {
		return nil, errors.NewValidationError("调整积分不能为0")
	}
	if err := uc.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	ok, err := uc.memberRepo.AdjustPoints(ctx, id, delta)
	if err != nil {
		uc.logger.Errorw("failed to adjust member points", "member_id", id, "delta", delta, "error", err)
		return nil, err
	}
	if !ok {
		return nil, member.ErrInsufficientPoints()
	}

	uc.logger.Infow("member points adjusted", "member_id", id, "delta", delta)
	return uc.reload(ctx, id)
}

func (uc *AdjustMemberUseCase) ensureExists(ctx context.Context, id uint) error {
	m, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return member.ErrMemberNotFound(id)
	}
	return nil
}

func (uc *AdjustMemberUseCase) reload(ctx context.Context, id uint) (*dto.MemberDTO, error) {
	m, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToMemberDTO(m), nil
}
