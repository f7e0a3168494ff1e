package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/member/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type ListMembersQuery struct {
	Search    string
	Level     string
	State     string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListMembersResult struct {
	Members  []*dto.MemberDTO
	Total    int64
	Page     int
	PageSize int
}

type ListMembersUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewListMembersUseCase(memberRepo member.Repository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, q ListMembersQuery) (*ListMembersResult, error) {
	filter := member.ListFilter{
		Search: q.Search,
		Level:  q.Level,
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
	}
	if q.State != "" {
		state, err := vo.ParseMemberState(q.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = &state
	}

	members, total, err := uc.memberRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list members", "error", err)
		return nil, err
	}

	return &ListMembersResult{
		Members:  dto.ToMemberDTOList(members),
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
