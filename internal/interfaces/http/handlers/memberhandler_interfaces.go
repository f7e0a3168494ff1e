package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	memberdto "github.com/orris-inc/memberhub/internal/application/member/dto"
	memberUsecases "github.com/orris-inc/memberhub/internal/application/member/usecases"
)

// Use case interfaces for MemberHandler

type createMemberUseCase interface {
	Execute(ctx context.Context, cmd memberUsecases.CreateMemberCommand) (*memberdto.MemberDTO, error)
}

type getMemberUseCase interface {
	Execute(ctx context.Context, id uint) (*memberdto.MemberDTO, error)
}

type listMembersUseCase interface {
	Execute(ctx context.Context, q memberUsecases.ListMembersQuery) (*memberUsecases.ListMembersResult, error)
}

type updateMemberUseCase interface {
	Execute(ctx context.Context, cmd memberUsecases.UpdateMemberCommand) (*memberdto.MemberDTO, error)
}

type deleteMemberUseCase interface {
	Execute(ctx context.Context, id uint) error
}

type adjustMemberUseCase interface {
	AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) (*memberdto.MemberDTO, error)
	AdjustPoints(ctx context.Context, id uint, delta int) (*memberdto.MemberDTO, error)
}
