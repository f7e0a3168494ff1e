package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/member/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type CreateMemberCommand struct {
	Name       string
	Phone      string
	Email      string
	Gender     string
	Birthday   *time.Time
	Level      string
	Balance    *decimal.Decimal
	Points     *int
	State      string
	Avatar     map[string]interface{}
	RegisterAt *time.Time
	Remark     string
	Payload    map[string]interface{}
}

type CreateMemberUseCase struct {
	memberRepo member.Repository
	sanitizer  TextSanitizer
	logger     logger.Interface
	now        func() time.Time
}

func NewCreateMemberUseCase(
	memberRepo member.Repository,
	sanitizer TextSanitizer,
	logger logger.Interface,
) *CreateMemberUseCase {
	return &CreateMemberUseCase{
		memberRepo: memberRepo,
		sanitizer:  sanitizer,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *CreateMemberUseCase) Execute(ctx context.Context, cmd CreateMemberCommand) (*dto.MemberDTO, error) {
	uc.logger.Infow("executing create member use case", "phone", cmd.Phone)

	state, err := vo.ParseMemberState(cmd.State)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	params := member.NewMemberParams{
		Name:       cmd.Name,
		Phone:      cmd.Phone,
		Email:      cmd.Email,
		Gender:     cmd.Gender,
		Birthday:   cmd.Birthday,
		Level:      cmd.Level,
		State:      state,
		Avatar:     cmd.Avatar,
		RegisterAt: cmd.RegisterAt,
		Remark:     uc.sanitizer.StripTags(cmd.Remark),
		Payload:    cmd.Payload,
	}
	if cmd.Balance != nil {
		params.Balance = *cmd.Balance
	}
	if cmd.Points != nil {
		params.Points = *cmd.Points
	}
	if params.Balance.IsNegative() || params.Points < 0 {
		return nil, errors.NewValidationError("余额和积分不能为负数")
	}

	m, err := member.NewMember(params, uc.now())
	if err != nil {
		return nil, err
	}

	existing, err := uc.memberRepo.GetByPhone(ctx, m.Phone())
	if err != nil {
		uc.logger.Errorw("failed to check member phone", "phone", m.Phone(), "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, member.ErrPhoneExists()
	}

	if err := uc.memberRepo.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to create member", "phone", m.Phone(), "error", err)
		return nil, err
	}

	uc.logger.Infow("member created successfully", "member_id", m.ID())
	return dto.ToMemberDTO(m), nil
}
