package mappers

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
)

type OperatorMapper interface {
	ToEntity(model *models.OperatorModel) (*operator.Operator, error)
	ToModel(entity *operator.Operator) *models.OperatorModel
}

type OperatorMapperImpl struct{}

func NewOperatorMapper() OperatorMapper {
	return &OperatorMapperImpl{}
}

func (m *OperatorMapperImpl) ToEntity(model *models.OperatorModel) (*operator.Operator, error) {
	if model == nil {
		return nil, nil
	}
	role, err := operator.ParseRole(model.Role)
	if err != nil {
		return nil, err
	}
	entity, err := operator.ReconstructOperator(operator.ReconstructParams{
		ID:           model.ID,
		Account:      model.Account,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Role:         role,
		Status:       operator.Status(model.Status),
		LastLoginAt:  model.LastLoginAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct operator entity: %w", err)
	}
	return entity, nil
}

func (m *OperatorMapperImpl) ToModel(entity *operator.Operator) *models.OperatorModel {
	return &models.OperatorModel{
		ID:           entity.ID(),
		Account:      entity.Account(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		Role:         string(entity.Role()),
		Status:       string(entity.Status()),
		LastLoginAt:  entity.LastLoginAt(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}
