package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/pack/dto"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// GetPackUseCase returns a pack with its description rendered to HTML.
type GetPackUseCase struct {
	packRepo pack.Repository
	renderer DescriptionRenderer
	logger   logger.Interface
}

func NewGetPackUseCase(packRepo pack.Repository, renderer DescriptionRenderer, logger logger.Interface) *GetPackUseCase {
	return &GetPackUseCase{
		packRepo: packRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *GetPackUseCase) Execute(ctx context.Context, id uint) (*dto.PackDTO, error) {
	p, err := uc.packRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_id", id, "error", err)
		return nil, err
	}
	if p == nil {
		return nil, pack.ErrPackNotFound(id)
	}

	result := dto.ToPackDTO(p)
	html, err := uc.renderer.ToHTML(p.Description())
	if err != nil {
		// the raw description is still returned
		uc.logger.Warnw("failed to render pack description", "pack_id", id, "error", err)
	} else {
		result.DescriptionHTML = html
	}
	return result, nil
}
