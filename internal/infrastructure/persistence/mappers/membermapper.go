package mappers

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/domain/member"
	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type MemberMapper interface {
	ToEntity(model *models.MemberModel) (*member.Member, error)
	ToModel(entity *member.Member) (*models.MemberModel, error)
	ToEntities(models []*models.MemberModel) ([]*member.Member, error)
}

type MemberMapperImpl struct{}

func NewMemberMapper() MemberMapper {
	return &MemberMapperImpl{}
}

func (m *MemberMapperImpl) ToEntity(model *models.MemberModel) (*member.Member, error) {
	if model == nil {
		return nil, nil
	}

	state, err := vo.ParseMemberState(model.State)
	if err != nil {
		return nil, err
	}
	avatar, err := unmarshalJSONMap("avatar", model.Avatar)
	if err != nil {
		return nil, err
	}
	payload, err := unmarshalJSONMap("payload", model.Payload)
	if err != nil {
		return nil, err
	}

	params := member.ReconstructParams{
		ID:        model.ID,
		Name:      model.Name,
		Phone:     model.Phone,
		Email:     model.Email,
		Gender:    model.Gender,
		Birthday:  model.Birthday,
		Level:     model.Level,
		Balance:   model.Balance,
		Points:    model.Points,
		State:     state,
		Avatar:    avatar,
		Remark:    model.Remark,
		Payload:   payload,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.RegisterAt != nil {
		params.RegisterAt = *model.RegisterAt
	}

	entity, err := member.ReconstructMember(params)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct member entity: %w", err)
	}
	return entity, nil
}

func (m *MemberMapperImpl) ToModel(entity *member.Member) (*models.MemberModel, error) {
	if entity == nil {
		return nil, nil
	}

	avatar, err := marshalJSONMap("avatar", entity.Avatar())
	if err != nil {
		return nil, err
	}
	payload, err := marshalJSONMap("payload", entity.Payload())
	if err != nil {
		return nil, err
	}

	model := &models.MemberModel{
		ID:        entity.ID(),
		Name:      entity.Name(),
		Phone:     entity.Phone(),
		Email:     entity.Email(),
		Gender:    entity.Gender(),
		Birthday:  entity.Birthday(),
		Level:     entity.Level(),
		Balance:   entity.Balance(),
		Points:    entity.Points(),
		State:     entity.State().String(),
		Avatar:    avatar,
		Remark:    entity.Remark(),
		Payload:   payload,
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
	if registerAt := entity.RegisterAt(); !registerAt.IsZero() {
		model.RegisterAt = &registerAt
	}
	return model, nil
}

func (m *MemberMapperImpl) ToEntities(modelList []*models.MemberModel) ([]*member.Member, error) {
	return mapper.MapSliceWithError(modelList, m.ToEntity)
}
