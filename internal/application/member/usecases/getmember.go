package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/member/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type GetMemberUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewGetMemberUseCase(memberRepo member.Repository, logger logger.Interface) *GetMemberUseCase {
	return &GetMemberUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *GetMemberUseCase) Execute(ctx context.Context, id uint) (*dto.MemberDTO, error) {
	m, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get member", "member_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound(id)
	}
	return dto.ToMemberDTO(m), nil
}
