package handlers

import (
	"context"
	"time"

	consumptiondto "github.com/orris-inc/memberhub/internal/application/consumption/dto"
	consumptionUsecases "github.com/orris-inc/memberhub/internal/application/consumption/usecases"
)

// Use case interfaces for ConsumptionHandler

type createConsumptionUseCase interface {
	Execute(ctx context.Context, cmd consumptionUsecases.CreateConsumptionCommand) (*consumptiondto.ConsumptionDTO, error)
}

type getConsumptionUseCase interface {
	Execute(ctx context.Context, consumptionID uint) (*consumptiondto.ConsumptionDTO, error)
}

type listConsumptionsUseCase interface {
	Execute(ctx context.Context, q consumptionUsecases.ListConsumptionsQuery) (*consumptionUsecases.ListConsumptionsResult, error)
}

type getConsumptionStatisticsUseCase interface {
	Execute(ctx context.Context, from, to *time.Time) (*consumptiondto.StatisticsDTO, error)
}

type updateConsumptionUseCase interface {
	Execute(ctx context.Context, cmd consumptionUsecases.UpdateConsumptionCommand) (*consumptiondto.ConsumptionDTO, error)
}

type removeConsumptionUseCase interface {
	Execute(ctx context.Context, consumptionID uint) error
}

type resetRechargeTimesUseCase interface {
	Reset(ctx context.Context, rechargeID uint) (*consumptiondto.RechargeCountersDTO, error)
	ResetBatch(ctx context.Context, rechargeIDs []uint) (*consumptiondto.BatchResetResultDTO, error)
	ResetAll(ctx context.Context) (*consumptiondto.ResetAllResultDTO, error)
}

type verifyRechargeTimesUseCase interface {
	Execute(ctx context.Context, rechargeID uint) (*consumptiondto.VerifyResultDTO, error)
}
