package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// RecountSalesUseCase sets a pack's salesCount to the number of its
// non-deleted recharges. Recharge writes call it inside their transaction.
type RecountSalesUseCase struct {
	packRepo pack.Repository
	counter  SalesCounter
	logger   logger.Interface
}

func NewRecountSalesUseCase(packRepo pack.Repository, counter SalesCounter, logger logger.Interface) *RecountSalesUseCase {
	return &RecountSalesUseCase{
		packRepo: packRepo,
		counter:  counter,
		logger:   logger,
	}
}

// Execute returns the new sales count.
func (uc *RecountSalesUseCase) Execute(ctx context.Context, packID uint) (int64, error) {
	p, err := uc.packRepo.GetByID(ctx, packID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, pack.ErrPackNotFound(packID)
	}

	count, err := uc.counter.CountByPack(ctx, packID)
	if err != nil {
		uc.logger.Errorw("failed to count pack recharges", "pack_id", packID, "error", err)
		return 0, err
	}

	if err := uc.packRepo.UpdateSalesCount(ctx, packID, count); err != nil {
		return 0, err
	}

	uc.logger.Debugw("pack sales recounted", "pack_id", packID, "sales_count", count)
	return count, nil
}
