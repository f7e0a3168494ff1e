package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	rechargedto "github.com/orris-inc/memberhub/internal/application/recharge/dto"
	rechargeUsecases "github.com/orris-inc/memberhub/internal/application/recharge/usecases"
)

// Use case interfaces for RechargeHandler

type createRechargeUseCase interface {
	Execute(ctx context.Context, cmd rechargeUsecases.CreateRechargeCommand) (*rechargedto.RechargeDTO, error)
}

type getRechargeUseCase interface {
	Execute(ctx context.Context, id uint) (*rechargedto.RechargeDTO, error)
}

type listRechargesUseCase interface {
	Execute(ctx context.Context, q rechargeUsecases.ListRechargesQuery) (*rechargeUsecases.ListRechargesResult, error)
}

type getRechargeStatisticsUseCase interface {
	Execute(ctx context.Context, from, to *time.Time) (*rechargedto.StatisticsDTO, error)
}

type updateRechargeUseCase interface {
	Execute(ctx context.Context, cmd rechargeUsecases.UpdateRechargeCommand) (*rechargedto.RechargeDTO, error)
}

type removeRechargeUseCase interface {
	Execute(ctx context.Context, id uint) error
}

type consumeRechargeUseCase interface {
	ConsumeAmount(ctx context.Context, id uint, amount decimal.Decimal) (*rechargedto.RechargeDTO, error)
	ConsumeTimes(ctx context.Context, id uint, times int) (*rechargedto.RechargeDTO, error)
}
