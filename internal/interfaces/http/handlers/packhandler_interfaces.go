package handlers

import (
	"context"

	packdto "github.com/orris-inc/memberhub/internal/application/pack/dto"
	packUsecases "github.com/orris-inc/memberhub/internal/application/pack/usecases"
)

// Use case interfaces for PackHandler

type createPackUseCase interface {
	Execute(ctx context.Context, cmd packUsecases.CreatePackCommand) (*packdto.PackDTO, error)
}

type getPackUseCase interface {
	Execute(ctx context.Context, id uint) (*packdto.PackDTO, error)
}

type listPacksUseCase interface {
	Execute(ctx context.Context, q packUsecases.ListPacksQuery) (*packUsecases.ListPacksResult, error)
}

type updatePackUseCase interface {
	Execute(ctx context.Context, cmd packUsecases.UpdatePackCommand) (*packdto.PackDTO, error)
}

type deletePackUseCase interface {
	Execute(ctx context.Context, id uint) error
}

type recountSalesUseCase interface {
	Execute(ctx context.Context, packID uint) (int64, error)
}
