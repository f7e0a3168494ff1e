package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// DeleteMemberUseCase soft-deletes a member. Its recharges and consumptions
// are kept for the books.
type DeleteMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewDeleteMemberUseCase(memberRepo member.Repository, logger logger.Interface) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *DeleteMemberUseCase) Execute(ctx context.Context, id uint) error {
	m, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get member", "member_id", id, "error", err)
		return err
	}
	if m == nil {
		return member.ErrMemberNotFound(id)
	}

	if err := uc.memberRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete member", "member_id", id, "error", err)
		return err
	}

	uc.logger.Infow("member deleted", "member_id", id)
	return nil
}
