package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/recharge"
	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/constants"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type RechargeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RechargeMapper
	logger logger.Interface
}

func NewRechargeRepository(db *gorm.DB, logger logger.Interface) recharge.Repository {
	return NewRechargeRepositoryWithMapper(db, mappers.NewRechargeMapper(), logger)
}

// NewRechargeRepositoryWithMapper lets tests pin the clock used for state
// derivation on read.
func NewRechargeRepositoryWithMapper(db *gorm.DB, mapper mappers.RechargeMapper, logger logger.Interface) recharge.Repository {
	return &RechargeRepositoryImpl{
		db:     db,
		mapper: mapper,
		logger: logger,
	}
}

func (r *RechargeRepositoryImpl) Create(ctx context.Context, entity *recharge.Recharge) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map recharge entity to model", "error", err)
		return fmt.Errorf("failed to map recharge entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create recharge in database", "member_id", model.MemberID, "error", err)
		return fmt.Errorf("failed to create recharge: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set recharge ID", "error", err)
		return fmt.Errorf("failed to set recharge ID: %w", err)
	}

	r.logger.Infow("recharge created successfully", "recharge_id", model.ID, "member_id", model.MemberID, "state", model.State)
	return nil
}

func (r *RechargeRepositoryImpl) GetByID(ctx context.Context, id uint) (*recharge.Recharge, error) {
	var model models.RechargeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get recharge by ID", "recharge_id", id, "error", err)
		return nil, fmt.Errorf("failed to get recharge: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map recharge model to entity", "recharge_id", id, "error", err)
		return nil, fmt.Errorf("failed to map recharge: %w", err)
	}
	return entity, nil
}

func (r *RechargeRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*recharge.Recharge, error) {
	if len(ids) == 0 {
		return []*recharge.Recharge{}, nil
	}

	var rechargeModels []*models.RechargeModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&rechargeModels).Error; err != nil {
		r.logger.Errorw("failed to get recharges by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get recharges: %w", err)
	}

	entities, err := r.mapper.ToEntities(rechargeModels)
	if err != nil {
		return nil, fmt.Errorf("failed to map recharges: %w", err)
	}
	return entities, nil
}

func (r *RechargeRepositoryImpl) Update(ctx context.Context, entity *recharge.Recharge) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map recharge entity to model", "recharge_id", entity.ID(), "error", err)
		return fmt.Errorf("failed to map recharge entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RechargeModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"member_id":        model.MemberID,
			"pack_id":          model.PackID,
			"package_name":     model.PackageName,
			"type":             model.Type,
			"recharge_amount":  model.RechargeAmount,
			"bonus_amount":     model.BonusAmount,
			"total_amount":     model.TotalAmount,
			"remaining_amount": model.RemainingAmount,
			"total_times":      model.TotalTimes,
			"used_times":       model.UsedTimes,
			"remaining_times":  model.RemainingTimes,
			"start_date":       model.StartDate,
			"end_date":         model.EndDate,
			"validity_days":    model.ValidityDays,
			"payment_type":     model.PaymentType,
			"seq":              model.Seq,
			"state":            model.State,
			"recharge_at":      model.RechargeAt,
			"operator_id":      model.OperatorID,
			"remark":           model.Remark,
			"payload":          model.Payload,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update recharge", "recharge_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update recharge: %w", result.Error)
	}

	r.logger.Infow("recharge updated successfully", "recharge_id", model.ID, "state", model.State)
	return nil
}

func (r *RechargeRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.RechargeModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete recharge", "recharge_id", id, "error", err)
		return fmt.Errorf("failed to delete recharge: %w", err)
	}

	r.logger.Infow("recharge deleted successfully", "recharge_id", id)
	return nil
}

func (r *RechargeRepositoryImpl) List(ctx context.Context, filter recharge.ListFilter) ([]*recharge.Recharge, int64, error) {
	var rechargeModels []*models.RechargeModel
	var total int64

	recharges := constants.TableRecharges
	query := db.GetTxFromContext(ctx, r.db).Model(&models.RechargeModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins(fmt.Sprintf("LEFT JOIN %s ON %s.id = %s.member_id", constants.TableMembers, constants.TableMembers, recharges)).
			Joins(fmt.Sprintf("LEFT JOIN %s ON %s.id = %s.pack_id", constants.TablePackages, constants.TablePackages, recharges)).
			Where(fmt.Sprintf("(%[1]s.name LIKE ? OR %[1]s.phone LIKE ? OR %[2]s.name LIKE ? OR %[2]s.description LIKE ?)",
				constants.TableMembers, constants.TablePackages), like, like, like, like)
	}
	if filter.MemberID != nil {
		query = query.Where(recharges+".member_id = ?", *filter.MemberID)
	}
	if filter.PackID != nil {
		query = query.Where(recharges+".pack_id = ?", *filter.PackID)
	}
	if filter.State != nil {
		query = query.Where(recharges+".state IN ?", storedRechargeStates(*filter.State))
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count recharges", "error", err)
		return nil, 0, fmt.Errorf("failed to count recharges: %w", err)
	}

	if err := query.
		Select(recharges + ".*").
		Order(recharges + ".recharge_at DESC").
		Order(recharges + ".id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rechargeModels).Error; err != nil {
		r.logger.Errorw("failed to list recharges", "error", err)
		return nil, 0, fmt.Errorf("failed to list recharges: %w", err)
	}

	entities, err := r.mapper.ToEntities(rechargeModels)
	if err != nil {
		r.logger.Errorw("failed to map recharge models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map recharges: %w", err)
	}
	return entities, total, nil
}

// storedRechargeStates expands a canonical state into the values that may
// be stored for it, including legacy spellings.
func storedRechargeStates(state vo.RechargeState) []string {
	switch state {
	case vo.StateActive:
		return []string{string(vo.StateActive), "valid", ""}
	case vo.StateCompleted:
		return []string{string(vo.StateCompleted), "used"}
	default:
		return []string{string(state)}
	}
}

func (r *RechargeRepositoryImpl) FindAutoSelectable(ctx context.Context, memberID uint, now time.Time) (*recharge.Recharge, error) {
	var model models.RechargeModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.
		Where("member_id = ?", memberID).
		Where("(state IS NULL OR state NOT IN ?)", []string{string(vo.StateExpired), string(vo.StateDisabled)}).
		Where("remaining_times > 0").
		Where("end_date >= ?", biztime.BusinessDate(now)).
		Order("end_date ASC").
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find auto-selectable recharge", "member_id", memberID, "error", err)
		return nil, fmt.Errorf("failed to find auto-selectable recharge: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map recharge: %w", err)
	}
	return entity, nil
}

func (r *RechargeRepositoryImpl) UpdateState(ctx context.Context, id uint, state vo.RechargeState) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.RechargeModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      state.String(),
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		r.logger.Errorw("failed to update recharge state", "recharge_id", id, "state", state, "error", err)
		return fmt.Errorf("failed to update recharge state: %w", err)
	}

	r.logger.Infow("recharge state updated", "recharge_id", id, "state", state)
	return nil
}

// IncrementUsage never lets remaining_times go below zero. Untracked
// recharges (remaining_times NULL) still count the use.
func (r *RechargeRepositoryImpl) IncrementUsage(ctx context.Context, id uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RechargeModel{}).
		Where("id = ? AND (remaining_times IS NULL OR remaining_times > 0)", id).
		Updates(map[string]interface{}{
			"used_times":      gorm.Expr("used_times + 1"),
			"remaining_times": gorm.Expr("remaining_times - 1"),
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to increment recharge usage", "recharge_id", id, "error", result.Error)
		return false, fmt.Errorf("failed to increment recharge usage: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RechargeRepositoryImpl) DeductAmount(ctx context.Context, id uint, amount decimal.Decimal) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RechargeModel{}).
		Where("id = ? AND remaining_amount >= ?", id, amount).
		Updates(map[string]interface{}{
			"remaining_amount": gorm.Expr("remaining_amount - ?", amount),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to deduct recharge amount", "recharge_id", id, "amount", amount.String(), "error", result.Error)
		return false, fmt.Errorf("failed to deduct recharge amount: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RechargeRepositoryImpl) DeductTimes(ctx context.Context, id uint, times int) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RechargeModel{}).
		Where("id = ? AND remaining_times >= ?", id, times).
		Updates(map[string]interface{}{
			"remaining_times": gorm.Expr("remaining_times - ?", times),
			"used_times":      gorm.Expr("used_times + ?", times),
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to deduct recharge times", "recharge_id", id, "times", times, "error", result.Error)
		return false, fmt.Errorf("failed to deduct recharge times: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CountByPack counts recharges by pack ID (excluding soft-deleted records).
func (r *RechargeRepositoryImpl) CountByPack(ctx context.Context, packID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.RechargeModel{}).
		Where("pack_id = ?", packID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count recharges by pack", "pack_id", packID, "error", err)
		return 0, fmt.Errorf("failed to count recharges: %w", err)
	}
	return count, nil
}

func (r *RechargeRepositoryImpl) ListIDsAfter(ctx context.Context, afterID uint, limit int) ([]uint, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.RechargeModel{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		r.logger.Errorw("failed to list recharge IDs", "after_id", afterID, "error", err)
		return nil, fmt.Errorf("failed to list recharge IDs: %w", err)
	}
	return ids, nil
}

type amountAggregate struct {
	TotalAmount decimal.Decimal
	TotalCount  int64
}

func (r *RechargeRepositoryImpl) Statistics(ctx context.Context, from, to *time.Time) (*recharge.Statistics, error) {
	var agg amountAggregate

	query := db.GetTxFromContext(ctx, r.db).Model(&models.RechargeModel{})
	if from != nil {
		query = query.Where("recharge_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("recharge_at <= ?", *to)
	}

	if err := query.
		Select("COALESCE(SUM(recharge_amount), 0) AS total_amount, COUNT(id) AS total_count").
		Scan(&agg).Error; err != nil {
		r.logger.Errorw("failed to aggregate recharge statistics", "error", err)
		return nil, fmt.Errorf("failed to aggregate recharges: %w", err)
	}

	return recharge.NewStatistics(agg.TotalAmount.Round(2), agg.TotalCount), nil
}

func (r *RechargeRepositoryImpl) SumCreated(ctx context.Context, from, to time.Time) (*recharge.Statistics, error) {
	var agg amountAggregate

	if err := db.GetTxFromContext(ctx, r.db).Model(&models.RechargeModel{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Where("(state IS NULL OR state <> ?)", string(vo.StateDisabled)).
		Select("COALESCE(SUM(recharge_amount), 0) AS total_amount, COUNT(id) AS total_count").
		Scan(&agg).Error; err != nil {
		r.logger.Errorw("failed to sum created recharges", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("failed to sum recharges: %w", err)
	}

	return recharge.NewStatistics(agg.TotalAmount.Round(2), agg.TotalCount), nil
}
