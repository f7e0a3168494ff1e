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

type CreatePackCommand struct {
	Name        string
	Description string
	PackType    string
	Category    string
	Icon        string
	MemberPrice decimal.Decimal
	SalePrice   decimal.Decimal
	Price       decimal.Decimal
	TotalTimes  *int
	ValidDay    int
	State       string
	Position    int
	Payload     map[string]interface{}
}

type CreatePackUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
	now      func() time.Time
}

func NewCreatePackUseCase(packRepo pack.Repository, logger logger.Interface) *CreatePackUseCase {
	return &CreatePackUseCase{
		packRepo: packRepo,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *CreatePackUseCase) Execute(ctx context.Context, cmd CreatePackCommand) (*dto.PackDTO, error) {
	uc.logger.Infow("executing create pack use case", "name", cmd.Name)

	params := pack.NewPackParams{
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
	if cmd.PackType != "" {
		packType, err := vo.ParsePackType(cmd.PackType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.PackType = packType
	}
	state, err := vo.ParsePackState(cmd.State)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	params.State = state

	p, err := pack.NewPack(params, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.packRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create pack", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("pack created successfully", "pack_id", p.ID())
	return dto.ToPackDTO(p), nil
}
