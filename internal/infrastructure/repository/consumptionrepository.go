package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

var consumptionSortColumns = map[string]string{
	"amount":        "amount",
	"consumptionAt": "consumption_at",
	"customerName":  "customer_name",
}

type ConsumptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ConsumptionMapper
	logger logger.Interface
}

func NewConsumptionRepository(db *gorm.DB, logger logger.Interface) consumption.Repository {
	return &ConsumptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewConsumptionMapper(),
		logger: logger,
	}
}

func (r *ConsumptionRepositoryImpl) Create(ctx context.Context, entity *consumption.Consumption) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map consumption entity to model", "error", err)
		return fmt.Errorf("failed to map consumption entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create consumption in database", "error", err)
		return fmt.Errorf("failed to create consumption: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set consumption ID: %w", err)
	}

	r.logger.Infow("consumption created successfully",
		"consumption_id", model.ID,
		"recharge_id", model.RechargeID,
		"amount", model.Amount.String(),
	)
	return nil
}

func (r *ConsumptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*consumption.Consumption, error) {
	var model models.ConsumptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get consumption by ID", "consumption_id", id, "error", err)
		return nil, fmt.Errorf("failed to get consumption: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map consumption model to entity", "consumption_id", id, "error", err)
		return nil, fmt.Errorf("failed to map consumption: %w", err)
	}
	return entity, nil
}

func (r *ConsumptionRepositoryImpl) Update(ctx context.Context, entity *consumption.Consumption) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map consumption entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ConsumptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"member_id":      model.MemberID,
			"recharge_id":    model.RechargeID,
			"pack_id":        model.PackID,
			"customer_name":  model.CustomerName,
			"customer_phone": model.CustomerPhone,
			"amount":         model.Amount,
			"payment_type":   model.PaymentType,
			"seq":            model.Seq,
			"state":          model.State,
			"consumption_at": model.ConsumptionAt,
			"operator_id":    model.OperatorID,
			"remark":         model.Remark,
			"payload":        model.Payload,
			"updated_at":     model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update consumption", "consumption_id", model.ID, "error", err)
		return fmt.Errorf("failed to update consumption: %w", err)
	}

	r.logger.Infow("consumption updated successfully", "consumption_id", model.ID)
	return nil
}

func (r *ConsumptionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.ConsumptionModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete consumption", "consumption_id", id, "error", err)
		return fmt.Errorf("failed to delete consumption: %w", err)
	}

	r.logger.Infow("consumption deleted successfully", "consumption_id", id)
	return nil
}

func (r *ConsumptionRepositoryImpl) List(ctx context.Context, filter consumption.ListFilter) ([]*consumption.Consumption, int64, error) {
	var consumptionModels []*models.ConsumptionModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ConsumptionModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.PackID != nil {
		query = query.Where("pack_id = ?", *filter.PackID)
	}
	if filter.RechargeID != nil {
		query = query.Where("recharge_id = ?", *filter.RechargeID)
	}
	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.State != nil {
		query = query.Where("state IN ?", storedConsumptionStates(*filter.State))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(customer_name LIKE ? OR customer_phone LIKE ?)", like, like)
	}
	if filter.StartDate != nil {
		query = query.Where("consumption_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("consumption_at <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count consumptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count consumptions: %w", err)
	}

	orderBy := filter.OrderClause(consumptionSortColumns, "consumption_at", true)
	if err := query.
		Order(orderBy).
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&consumptionModels).Error; err != nil {
		r.logger.Errorw("failed to list consumptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list consumptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(consumptionModels)
	if err != nil {
		r.logger.Errorw("failed to map consumption models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map consumptions: %w", err)
	}
	return entities, total, nil
}

// storedConsumptionStates expands a canonical state into every stored
// spelling that maps onto it.
func storedConsumptionStates(state vo.ConsumptionState) []string {
	switch state {
	case vo.StateValid:
		return []string{string(vo.StateValid), "", "1"}
	case vo.StateCompleted:
		return []string{string(vo.StateCompleted), "2", "used"}
	case vo.StateCancelled:
		return []string{string(vo.StateCancelled), "disabled", "expired"}
	default:
		return []string{string(state)}
	}
}

func (r *ConsumptionRepositoryImpl) CountUsageByRecharge(ctx context.Context, rechargeID uint) (int64, error) {
	var states []string
	for _, s := range vo.UsageStates() {
		states = append(states, storedConsumptionStates(s)...)
	}

	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ConsumptionModel{}).
		Where("recharge_id = ?", rechargeID).
		Where("state IN ?", states).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count consumptions by recharge", "recharge_id", rechargeID, "error", err)
		return 0, fmt.Errorf("failed to count consumptions: %w", err)
	}
	return count, nil
}

func (r *ConsumptionRepositoryImpl) Statistics(ctx context.Context, from, to *time.Time) (*consumption.Statistics, error) {
	var agg amountAggregate

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ConsumptionModel{})
	if from != nil {
		query = query.Where("consumption_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("consumption_at <= ?", *to)
	}

	if err := query.
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS total_count").
		Scan(&agg).Error; err != nil {
		r.logger.Errorw("failed to aggregate consumption statistics", "error", err)
		return nil, fmt.Errorf("failed to aggregate consumptions: %w", err)
	}

	return consumption.NewStatistics(agg.TotalAmount.Round(2), agg.TotalCount), nil
}
