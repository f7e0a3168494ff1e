package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// packSortColumns accepts both camelCase and column spellings.
var packSortColumns = map[string]string{
	"name":        "name",
	"price":       "member_price",
	"memberPrice": "member_price",
	"position":    "position",
	"salesCount":  "sales_count",
	"sales_count": "sales_count",
	"createdAt":   "created_at",
	"created_at":  "created_at",
}

type PackRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PackMapper
	logger logger.Interface
}

func NewPackRepository(db *gorm.DB, logger logger.Interface) pack.Repository {
	return &PackRepositoryImpl{
		db:     db,
		mapper: mappers.NewPackMapper(),
		logger: logger,
	}
}

func (r *PackRepositoryImpl) Create(ctx context.Context, entity *pack.Pack) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map pack entity to model", "error", err)
		return fmt.Errorf("failed to map pack entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create pack in database", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create pack: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set pack ID: %w", err)
	}

	r.logger.Infow("pack created successfully", "pack_id", model.ID, "name", model.Name)
	return nil
}

func (r *PackRepositoryImpl) GetByID(ctx context.Context, id uint) (*pack.Pack, error) {
	var model models.PackModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get pack by ID", "pack_id", id, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map pack model to entity", "pack_id", id, "error", err)
		return nil, fmt.Errorf("failed to map pack: %w", err)
	}
	return entity, nil
}

func (r *PackRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*pack.Pack, error) {
	if len(ids) == 0 {
		return []*pack.Pack{}, nil
	}

	var packModels []*models.PackModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&packModels).Error; err != nil {
		r.logger.Errorw("failed to get packs by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get packs: %w", err)
	}

	return r.mapper.ToEntities(packModels)
}

func (r *PackRepositoryImpl) Update(ctx context.Context, entity *pack.Pack) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map pack entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PackModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"description":  model.Description,
			"pack_type":    model.PackType,
			"category":     model.Category,
			"icon":         model.Icon,
			"member_price": model.MemberPrice,
			"sale_price":   model.SalePrice,
			"price":        model.Price,
			"total_times":  model.TotalTimes,
			"valid_day":    model.ValidDay,
			"state":        model.State,
			"position":     model.Position,
			"payload":      model.Payload,
			"updated_at":   model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update pack", "pack_id", model.ID, "error", err)
		return fmt.Errorf("failed to update pack: %w", err)
	}

	r.logger.Infow("pack updated successfully", "pack_id", model.ID)
	return nil
}

func (r *PackRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.PackModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete pack", "pack_id", id, "error", err)
		return fmt.Errorf("failed to delete pack: %w", err)
	}

	r.logger.Infow("pack deleted successfully", "pack_id", id)
	return nil
}

func (r *PackRepositoryImpl) List(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
	var packModels []*models.PackModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.PackModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR description LIKE ?)", like, like)
	}
	if filter.PackType != nil {
		query = query.Where("pack_type = ?", filter.PackType.String())
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.State != nil {
		query = query.Where("state = ?", string(*filter.State))
	}
	if filter.MinPrice != nil {
		query = query.Where("member_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("member_price <= ?", *filter.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count packs", "error", err)
		return nil, 0, fmt.Errorf("failed to count packs: %w", err)
	}

	if err := query.
		Order(filter.OrderClause(packSortColumns, "position", false)).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&packModels).Error; err != nil {
		r.logger.Errorw("failed to list packs", "error", err)
		return nil, 0, fmt.Errorf("failed to list packs: %w", err)
	}

	entities, err := r.mapper.ToEntities(packModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map packs: %w", err)
	}
	return entities, total, nil
}

func (r *PackRepositoryImpl) UpdateSalesCount(ctx context.Context, id uint, count int64) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PackModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sales_count": count,
			"updated_at":  time.Now().UTC(),
		}).Error; err != nil {
		r.logger.Errorw("failed to update pack sales count", "pack_id", id, "error", err)
		return fmt.Errorf("failed to update pack sales count: %w", err)
	}
	return nil
}
