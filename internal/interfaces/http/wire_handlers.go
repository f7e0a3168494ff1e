package http

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
)

// allHandlers holds every HTTP handler instance created by the container.
type allHandlers struct {
	memberHandler      *handlers.MemberHandler
	packHandler        *handlers.PackHandler
	rechargeHandler    *handlers.RechargeHandler
	consumptionHandler *handlers.ConsumptionHandler
	statsHandler       *handlers.StatsHandler
	authHandler        *handlers.AuthHandler
	healthHandler      *handlers.HealthHandler
}

func (c *Container) newHandlers() (*allHandlers, error) {
	ucs := c.ucs
	log := c.log

	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return &allHandlers{
		memberHandler: handlers.NewMemberHandler(
			ucs.createMember, ucs.getMember, ucs.listMembers,
			ucs.updateMember, ucs.deleteMember, ucs.adjustMember, log,
		),
		packHandler: handlers.NewPackHandler(
			ucs.createPack, ucs.getPack, ucs.listPacks,
			ucs.updatePack, ucs.deletePack, ucs.recountSales, log,
		),
		rechargeHandler: handlers.NewRechargeHandler(
			ucs.createRecharge, ucs.getRecharge, ucs.listRecharges, ucs.rechargeStatistics,
			ucs.updateRecharge, ucs.removeRecharge, ucs.consumeRecharge, log,
		),
		consumptionHandler: handlers.NewConsumptionHandler(
			ucs.createConsumption, ucs.getConsumption, ucs.listConsumptions, ucs.consumptionStatistics,
			ucs.updateConsumption, ucs.removeConsumption, ucs.resetRechargeTimes, ucs.verifyRechargeTimes, log,
		),
		statsHandler:  handlers.NewStatsHandler(ucs.rechargeStats, ucs.memberStats),
		authHandler:   handlers.NewAuthHandler(ucs.login, ucs.logout, log),
		healthHandler: handlers.NewHealthHandler(sqlDB, log),
	}, nil
}
