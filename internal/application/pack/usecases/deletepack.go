package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type DeletePackUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
}

func NewDeletePackUseCase(packRepo pack.Repository, logger logger.Interface) *DeletePackUseCase {
	return &DeletePackUseCase{
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *DeletePackUseCase) Execute(ctx context.Context, id uint) error {
	p, err := uc.packRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_id", id, "error", err)
		return err
	}
	if p == nil {
		return pack.ErrPackNotFound(id)
	}

	if err := uc.packRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete pack", "pack_id", id, "error", err)
		return err
	}

	uc.logger.Infow("pack deleted", "pack_id", id)
	return nil
}
