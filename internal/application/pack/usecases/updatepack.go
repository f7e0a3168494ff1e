package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/pack/dto"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	vo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type UpdatePackCommand struct {
	ID          uint
	Name        *string
	Description *string
	PackType    *string
	Category    *string
	Icon        *string
	MemberPrice *decimal.Decimal
	SalePrice   *decimal.Decimal
	Price       *decimal.Decimal
	TotalTimes  *int
	ValidDay    *int
	State       *string
	Position    *int
	Payload     map[string]interface{}
}

type UpdatePackUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
	now      func() time.Time
}

func NewUpdatePackUseCase(packRepo pack.Repository, logger logger.Interface) *UpdatePackUseCase {
	return &UpdatePackUseCase{
		packRepo: packRepo,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *UpdatePackUseCase) Execute(ctx context.Context, cmd UpdatePackCommand) (*dto.PackDTO, error) {
	uc.logger.Infow("executing update pack use case", "pack_id", cmd.ID)

	p, err := uc.packRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_id", cmd.ID, "error", err)
		return nil, err
	}
	if p == nil {
		return nil, pack.ErrPackNotFound(cmd.ID)
	}

	params := pack.UpdateParams{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Icon:        cmd.Icon,
		MemberPrice: cmd.MemberPrice,
		SalePrice:   cmd.SalePrice,
		Price:       cmd.Price,
		TotalTimes:  cmd.TotalTimes,
		ValidDay:    cmd.ValidDay,
		Position:    cmd.Position,
		Payload:     cmd.Payload,
	}
	if cmd.PackType != nil {
		packType, err := vo.ParsePackType(*cmd.PackType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.PackType = &packType
	}
	if cmd.State != nil {
		state, err := vo.ParsePackState(*cmd.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.State = &state
	}

	if err := p.Update(params, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.packRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update pack", "pack_id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("pack updated successfully", "pack_id", cmd.ID)
	return dto.ToPackDTO(p), nil
}
