package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type OperatorRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OperatorMapper
	logger logger.Interface
}

func NewOperatorRepository(db *gorm.DB, logger logger.Interface) operator.Repository {
	return &OperatorRepositoryImpl{
		db:     db,
		mapper: mappers.NewOperatorMapper(),
		logger: logger,
	}
}

func (r *OperatorRepositoryImpl) Create(ctx context.Context, entity *operator.Operator) error {
	model := r.mapper.ToModel(entity)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create operator", "account", model.Account, "error", err)
		return fmt.Errorf("failed to create operator: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set operator ID: %w", err)
	}

	r.logger.Infow("operator created successfully", "operator_id", model.ID, "account", model.Account, "role", model.Role)
	return nil
}

func (r *OperatorRepositoryImpl) GetByID(ctx context.Context, id uint) (*operator.Operator, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *OperatorRepositoryImpl) GetByAccount(ctx context.Context, account string) (*operator.Operator, error) {
	return r.first(ctx, "account = ?", account)
}

func (r *OperatorRepositoryImpl) first(ctx context.Context, cond string, arg interface{}) (*operator.Operator, error) {
	var model models.OperatorModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get operator", "condition", cond, "error", err)
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OperatorRepositoryImpl) Update(ctx context.Context, entity *operator.Operator) error {
	model := r.mapper.ToModel(entity)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OperatorModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"password_hash": model.PasswordHash,
			"role":          model.Role,
			"status":        model.Status,
			"last_login_at": model.LastLoginAt,
			"updated_at":    model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update operator", "operator_id", model.ID, "error", err)
		return fmt.Errorf("failed to update operator: %w", err)
	}
	return nil
}
