package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/member/dto"
	"github.com/orris-inc/memberhub/internal/domain/member"
	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type UpdateMemberCommand struct {
	ID         uint
	Name       *string
	Phone      *string
	Email      *string
	Gender     *string
	Birthday   *time.Time
	Level      *string
	State      *string
	Avatar     map[string]interface{}
	RegisterAt *time.Time
	Remark     *string
	Payload    map[string]interface{}
}

type UpdateMemberUseCase struct {
	memberRepo member.Repository
	sanitizer  TextSanitizer
	logger     logger.Interface
	now        func() time.Time
}

func NewUpdateMemberUseCase(
	memberRepo member.Repository,
	sanitizer TextSanitizer,
	logger logger.Interface,
) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{
		memberRepo: memberRepo,
		sanitizer:  sanitizer,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *UpdateMemberUseCase) Execute(ctx context.Context, cmd UpdateMemberCommand) (*dto.MemberDTO, error) {
	uc.logger.Infow("executing update member use case", "member_id", cmd.ID)

	m, err := uc.memberRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "member_id", cmd.ID, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound(cmd.ID)
	}

	params := member.UpdateParams{
		Name:       cmd.Name,
		Phone:      cmd.Phone,
		Email:      cmd.Email,
		Gender:     cmd.Gender,
		Birthday:   cmd.Birthday,
		Level:      cmd.Level,
		Avatar:     cmd.Avatar,
		RegisterAt: cmd.RegisterAt,
		Payload:    cmd.Payload,
	}
	if cmd.State != nil {
		state, err := vo.ParseMemberState(*cmd.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.State = &state
	}
	if cmd.Remark != nil {
		remark := uc.sanitizer.StripTags(*cmd.Remark)
		params.Remark = &remark
	}

	if err := m.Update(params, uc.now()); err != nil {
		return nil, err
	}

	if cmd.Phone != nil {
		existing, err := uc.memberRepo.GetByPhone(ctx, m.Phone())
		if err != nil {
			uc.logger.Errorw("failed to check member phone", "member_id", cmd.ID, "error", err)
			return nil, err
		}
		if existing != nil && existing.ID() != m.ID() {
			return nil, member.ErrPhoneExists()
		}
	}

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update member", "member_id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("member updated successfully", "member_id", cmd.ID)
	return dto.ToMemberDTO(m), nil
}
