package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/recharge/dto"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type GetRechargeUseCase struct {
	rechargeRepo recharge.Repository
	logger       logger.Interface
}

func NewGetRechargeUseCase(rechargeRepo recharge.Repository, logger logger.Interface) *GetRechargeUseCase {
	return &GetRechargeUseCase{
		rechargeRepo: rechargeRepo,
		logger:       logger,
	}
}

func (uc *GetRechargeUseCase) Execute(ctx context.Context, id uint) (*dto.RechargeDTO, error) {
	r, err := uc.rechargeRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get recharge", "recharge_id", id, "error", err)
		return nil, err
	}
	if r == nil {
		return nil, recharge.ErrRechargeNotFound(id)
	}
	return dto.ToRechargeDTO(r), nil
}
