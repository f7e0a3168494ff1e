package mappers

import (
	"fmt"
	"time"

	"github.com/orris-inc/memberhub/internal/domain/recharge"
	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type RechargeMapper interface {
	ToEntity(model *models.RechargeModel) (*recharge.Recharge, error)
	ToModel(entity *recharge.Recharge) (*models.RechargeModel, error)
	ToEntities(models []*models.RechargeModel) ([]*recharge.Recharge, error)
}

type RechargeMapperImpl struct {
	now func() time.Time
}

func NewRechargeMapper() RechargeMapper {
	return &RechargeMapperImpl{now: biztime.NowUTC}
}

// NewRechargeMapperWithClock pins the time used for state derivation on read.
func NewRechargeMapperWithClock(now func() time.Time) RechargeMapper {
	return &RechargeMapperImpl{now: now}
}

// ToEntity normalises legacy state values and derives the current state.
func (m *RechargeMapperImpl) ToEntity(model *models.RechargeModel) (*recharge.Recharge, error) {
	if model == nil {
		return nil, nil
	}

	state, err := vo.ParseRechargeState(model.State)
	if err != nil {
		return nil, err
	}

	rechargeType := vo.RechargeType(model.Type)
	if rechargeType == "" {
		rechargeType = vo.TypeBalance
	}

	payload, err := unmarshalJSONMap("payload", model.Payload)
	if err != nil {
		return nil, err
	}

	entity, err := recharge.ReconstructRecharge(recharge.ReconstructParams{
		ID:              model.ID,
		MemberID:        model.MemberID,
		PackID:          model.PackID,
		PackageName:     model.PackageName,
		Type:            rechargeType,
		RechargeAmount:  model.RechargeAmount,
		BonusAmount:     model.BonusAmount,
		TotalAmount:     model.TotalAmount,
		RemainingAmount: model.RemainingAmount,
		TotalTimes:      model.TotalTimes,
		UsedTimes:       model.UsedTimes,
		RemainingTimes:  model.RemainingTimes,
		StartDate:       model.StartDate,
		EndDate:         model.EndDate,
		ValidityDays:    model.ValidityDays,
		PaymentType:     model.PaymentType,
		Seq:             model.Seq,
		State:           state,
		RechargeAt:      model.RechargeAt,
		OperatorID:      model.OperatorID,
		Remark:          model.Remark,
		Payload:         payload,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}, m.now())
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct recharge entity: %w", err)
	}

	return entity, nil
}

func (m *RechargeMapperImpl) ToModel(entity *recharge.Recharge) (*models.RechargeModel, error) {
	if entity == nil {
		return nil, nil
	}

	payload, err := marshalJSONMap("payload", entity.Payload())
	if err != nil {
		return nil, err
	}

	return &models.RechargeModel{
		ID:              entity.ID(),
		MemberID:        entity.MemberID(),
		PackID:          entity.PackID(),
		PackageName:     entity.PackageName(),
		Type:            string(entity.Type()),
		RechargeAmount:  entity.RechargeAmount(),
		BonusAmount:     entity.BonusAmount(),
		TotalAmount:     entity.TotalAmount(),
		RemainingAmount: entity.RemainingAmount(),
		TotalTimes:      entity.TotalTimes(),
		UsedTimes:       entity.UsedTimes(),
		RemainingTimes:  entity.RemainingTimes(),
		StartDate:       entity.StartDate(),
		EndDate:         entity.EndDate(),
		ValidityDays:    entity.ValidityDays(),
		PaymentType:     entity.PaymentType(),
		Seq:             entity.Seq(),
		State:           entity.State().String(),
		RechargeAt:      entity.RechargeAt(),
		OperatorID:      entity.OperatorID(),
		Remark:          entity.Remark(),
		Payload:         payload,
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *RechargeMapperImpl) ToEntities(modelList []*models.RechargeModel) ([]*recharge.Recharge, error) {
	return mapper.MapSliceWithError(modelList, m.ToEntity)
}
