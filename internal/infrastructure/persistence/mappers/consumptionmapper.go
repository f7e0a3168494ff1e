package mappers

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type ConsumptionMapper interface {
	ToEntity(model *models.ConsumptionModel) (*consumption.Consumption, error)
	ToModel(entity *consumption.Consumption) (*models.ConsumptionModel, error)
	ToEntities(models []*models.ConsumptionModel) ([]*consumption.Consumption, error)
}

type ConsumptionMapperImpl struct{}

func NewConsumptionMapper() ConsumptionMapper {
	return &ConsumptionMapperImpl{}
}

// ToEntity maps legacy state strings ('1', '2', used, disabled, expired)
// onto the canonical consumption states.
func (m *ConsumptionMapperImpl) ToEntity(model *models.ConsumptionModel) (*consumption.Consumption, error) {
	if model == nil {
		return nil, nil
	}

	state, err := vo.ParseConsumptionState(model.State)
	if err != nil {
		return nil, err
	}

	payload, err := unmarshalJSONMap("payload", model.Payload)
	if err != nil {
		return nil, err
	}

	entity, err := consumption.ReconstructConsumption(consumption.ReconstructParams{
		ID:            model.ID,
		MemberID:      model.MemberID,
		RechargeID:    model.RechargeID,
		PackID:        model.PackID,
		CustomerName:  model.CustomerName,
		CustomerPhone: model.CustomerPhone,
		Amount:        model.Amount,
		PaymentType:   model.PaymentType,
		Seq:           model.Seq,
		State:         state,
		ConsumptionAt: model.ConsumptionAt,
		OperatorID:    model.OperatorID,
		Remark:        model.Remark,
		Payload:       payload,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct consumption entity: %w", err)
	}
	return entity, nil
}

func (m *ConsumptionMapperImpl) ToModel(entity *consumption.Consumption) (*models.ConsumptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	payload, err := marshalJSONMap("payload", entity.Payload())
	if err != nil {
		return nil, err
	}

	return &models.ConsumptionModel{
		ID:            entity.ID(),
		MemberID:      entity.MemberID(),
		RechargeID:    entity.RechargeID(),
		PackID:        entity.PackID(),
		CustomerName:  entity.CustomerName(),
		CustomerPhone: entity.CustomerPhone(),
		Amount:        entity.Amount(),
		PaymentType:   entity.PaymentType(),
		Seq:           entity.Seq(),
		State:         entity.State().String(),
		ConsumptionAt: entity.ConsumptionAt(),
		OperatorID:    entity.OperatorID(),
		Remark:        entity.Remark(),
		Payload:       payload,
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *ConsumptionMapperImpl) ToEntities(modelList []*models.ConsumptionModel) ([]*consumption.Consumption, error) {
	return mapper.MapSliceWithError(modelList, m.ToEntity)
}
