package mappers

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	vo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type PackMapper interface {
	ToEntity(model *models.PackModel) (*pack.Pack, error)
	ToModel(entity *pack.Pack) (*models.PackModel, error)
	ToEntities(models []*models.PackModel) ([]*pack.Pack, error)
}

type PackMapperImpl struct{}

func NewPackMapper() PackMapper {
	return &PackMapperImpl{}
}

func (m *PackMapperImpl) ToEntity(model *models.PackModel) (*pack.Pack, error) {
	if model == nil {
		return nil, nil
	}

	state, err := vo.ParsePackState(model.State)
	if err != nil {
		return nil, err
	}
	payload, err := unmarshalJSONMap("payload", model.Payload)
	if err != nil {
		return nil, err
	}

	entity, err := pack.ReconstructPack(pack.ReconstructParams{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		PackType:    vo.PackType(model.PackType),
		Category:    model.Category,
		Icon:        model.Icon,
		MemberPrice: model.MemberPrice,
		SalePrice:   model.SalePrice,
		Price:       model.Price,
		TotalTimes:  model.TotalTimes,
		ValidDay:    model.ValidDay,
		State:       state,
		Position:    model.Position,
		SalesCount:  model.SalesCount,
		Payload:     payload,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pack entity: %w", err)
	}
	return entity, nil
}

func (m *PackMapperImpl) ToModel(entity *pack.Pack) (*models.PackModel, error) {
	if entity == nil {
		return nil, nil
	}

	payload, err := marshalJSONMap("payload", entity.Payload())
	if err != nil {
		return nil, err
	}

	return &models.PackModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		PackType:    entity.PackType().String(),
		Category:    entity.Category(),
		Icon:        entity.Icon(),
		MemberPrice: entity.MemberPrice(),
		SalePrice:   entity.SalePrice(),
		Price:       entity.Price(),
		TotalTimes:  entity.TotalTimes(),
		ValidDay:    entity.ValidDay(),
		State:       string(entity.State()),
		Position:    entity.Position(),
		SalesCount:  entity.SalesCount(),
		Payload:     payload,
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *PackMapperImpl) ToEntities(modelList []*models.PackModel) ([]*pack.Pack, error) {
	return mapper.MapSliceWithError(modelList, m.ToEntity)
}
