package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/member"
	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

var memberSortColumns = map[string]string{
	"name":       "name",
	"balance":    "balance",
	"points":     "points",
	"registerAt": "register_at",
	"createdAt":  "created_at",
}

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MemberMapper
	logger logger.Interface
}

func NewMemberRepository(db *gorm.DB, logger logger.Interface) member.Repository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mappers.NewMemberMapper(),
		logger: logger,
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, entity *member.Member) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map member entity to model", "error", err)
		return fmt.Errorf("failed to map member entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create member in database", "phone", model.Phone, "error", err)
		return fmt.Errorf("failed to create member: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set member ID: %w", err)
	}

	r.logger.Infow("member created successfully", "member_id", model.ID, "phone", model.Phone)
	return nil
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	var model models.MemberModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get member by ID", "member_id", id, "error", err)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return r.toEntity(&model)
}

func (r *MemberRepositoryImpl) GetByPhone(ctx context.Context, phone string) (*member.Member, error) {
	var model models.MemberModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("phone = ?", phone).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get member by phone", "phone", phone, "error", err)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return r.toEntity(&model)
}

func (r *MemberRepositoryImpl) toEntity(model *models.MemberModel) (*member.Member, error) {
	entity, err := r.mapper.ToEntity(model)
	if err != nil {
		r.logger.Errorw("failed to map member model to entity", "member_id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map member: %w", err)
	}
	return entity, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, entity *member.Member) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map member entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.MemberModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"phone":       model.Phone,
			"email":       model.Email,
			"gender":      model.Gender,
			"birthday":    model.Birthday,
			"level":       model.Level,
			"balance":     model.Balance,
			"points":      model.Points,
			"state":       model.State,
			"avatar":      model.Avatar,
			"register_at": model.RegisterAt,
			"remark":      model.Remark,
			"payload":     model.Payload,
			"updated_at":  model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update member", "member_id", model.ID, "error", err)
		return fmt.Errorf("failed to update member: %w", err)
	}

	r.logger.Infow("member updated successfully", "member_id", model.ID)
	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.MemberModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete member", "member_id", id, "error", err)
		return fmt.Errorf("failed to delete member: %w", err)
	}

	r.logger.Infow("member deleted successfully", "member_id", id)
	return nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context, filter member.ListFilter) ([]*member.Member, int64, error) {
	var memberModels []*models.MemberModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR phone LIKE ? OR email LIKE ?)", like, like, like)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.State != nil {
		query = query.Where("state = ?", filter.State.String())
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count members", "error", err)
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	if err := query.
		Order(filter.OrderClause(memberSortColumns, "created_at", true)).
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&memberModels).Error; err != nil {
		r.logger.Errorw("failed to list members", "error", err)
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	entities, err := r.mapper.ToEntities(memberModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map members: %w", err)
	}
	return entities, total, nil
}

func (r *MemberRepositoryImpl) AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.MemberModel{}).
		Where("id = ? AND balance + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to adjust member balance", "member_id", id, "delta", delta.String(), "error", result.Error)
		return false, fmt.Errorf("failed to adjust member balance: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MemberRepositoryImpl) AdjustPoints(ctx context.Context, id uint, delta int) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.MemberModel{}).
		Where("id = ? AND points + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to adjust member points", "member_id", id, "delta", delta, "error", result.Error)
		return false, fmt.Errorf("failed to adjust member points: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MemberRepositoryImpl) CountActive(ctx context.Context, from *time.Time, to time.Time) (int64, error) {
	var count int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}).
		Where("state = ?", vo.StateActive.String()).
		Where("created_at <= ?", to)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}

	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active members", "error", err)
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}
