package http

import (
	"time"

	consumptionUsecases "github.com/orris-inc/memberhub/internal/application/consumption/usecases"
	memberUsecases "github.com/orris-inc/memberhub/internal/application/member/usecases"
	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
	packUsecases "github.com/orris-inc/memberhub/internal/application/pack/usecases"
	rechargeUsecases "github.com/orris-inc/memberhub/internal/application/recharge/usecases"
	statsUsecases "github.com/orris-inc/memberhub/internal/application/stats/usecases"
)

// allUseCases holds every use case instance created by the container.
type allUseCases struct {
	// Member
	createMember *memberUsecases.CreateMemberUseCase
	getMember    *memberUsecases.GetMemberUseCase
	listMembers  *memberUsecases.ListMembersUseCase
	updateMember *memberUsecases.UpdateMemberUseCase
	deleteMember *memberUsecases.DeleteMemberUseCase
	adjustMember *memberUsecases.AdjustMemberUseCase

	// Pack
	createPack   *packUsecases.CreatePackUseCase
	getPack      *packUsecases.GetPackUseCase
	listPacks    *packUsecases.ListPacksUseCase
	updatePack   *packUsecases.UpdatePackUseCase
	deletePack   *packUsecases.DeletePackUseCase
	recountSales *packUsecases.RecountSalesUseCase

	// Recharge
	createRecharge     *rechargeUsecases.CreateRechargeUseCase
	getRecharge        *rechargeUsecases.GetRechargeUseCase
	listRecharges      *rechargeUsecases.ListRechargesUseCase
	rechargeStatistics *rechargeUsecases.GetRechargeStatisticsUseCase
	updateRecharge     *rechargeUsecases.UpdateRechargeUseCase
	removeRecharge     *rechargeUsecases.RemoveRechargeUseCase
	consumeRecharge    *rechargeUsecases.ConsumeRechargeUseCase

	// Consumption
	createConsumption     *consumptionUsecases.CreateConsumptionUseCase
	getConsumption        *consumptionUsecases.GetConsumptionUseCase
	listConsumptions      *consumptionUsecases.ListConsumptionsUseCase
	consumptionStatistics *consumptionUsecases.GetConsumptionStatisticsUseCase
	updateConsumption     *consumptionUsecases.UpdateConsumptionUseCase
	removeConsumption     *consumptionUsecases.RemoveConsumptionUseCase
	resetRechargeTimes    *consumptionUsecases.ResetRechargeTimesUseCase
	verifyRechargeTimes   *consumptionUsecases.VerifyRechargeTimesUseCase

	// Operator
	login  *operatorUsecases.LoginUseCase
	logout *operatorUsecases.LogoutUseCase

	// Stats
	rechargeStats *statsUsecases.GetRechargeStatsUseCase
	memberStats   *statsUsecases.GetMemberStatsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log
	acct := c.cfg.Accounting

	ucs := &allUseCases{}

	ucs.createMember = memberUsecases.NewCreateMemberUseCase(r.memberRepo, c.renderer, log)
	ucs.getMember = memberUsecases.NewGetMemberUseCase(r.memberRepo, log)
	ucs.listMembers = memberUsecases.NewListMembersUseCase(r.memberRepo, log)
	ucs.updateMember = memberUsecases.NewUpdateMemberUseCase(r.memberRepo, c.renderer, log)
	ucs.deleteMember = memberUsecases.NewDeleteMemberUseCase(r.memberRepo, log)
	ucs.adjustMember = memberUsecases.NewAdjustMemberUseCase(r.memberRepo, log)

	ucs.createPack = packUsecases.NewCreatePackUseCase(r.packRepo, log)
	ucs.getPack = packUsecases.NewGetPackUseCase(r.packRepo, c.renderer, log)
	ucs.listPacks = packUsecases.NewListPacksUseCase(r.packRepo, log)
	ucs.updatePack = packUsecases.NewUpdatePackUseCase(r.packRepo, log)
	ucs.deletePack = packUsecases.NewDeletePackUseCase(r.packRepo, log)
	ucs.recountSales = packUsecases.NewRecountSalesUseCase(r.packRepo, r.rechargeRepo, log)

	ucs.createRecharge = rechargeUsecases.NewCreateRechargeUseCase(
		r.rechargeRepo, r.consumptionRepo, r.memberRepo, r.packRepo,
		ucs.recountSales, c.txManager, c.publisher, log,
	)
	if acct.DefaultValidityDays > 0 {
		ucs.createRecharge.SetDefaultValidityDays(acct.DefaultValidityDays)
	}
	ucs.getRecharge = rechargeUsecases.NewGetRechargeUseCase(r.rechargeRepo, log)
	ucs.listRecharges = rechargeUsecases.NewListRechargesUseCase(r.rechargeRepo, log)
	ucs.rechargeStatistics = rechargeUsecases.NewGetRechargeStatisticsUseCase(r.rechargeRepo, log)
	ucs.updateRecharge = rechargeUsecases.NewUpdateRechargeUseCase(r.rechargeRepo, log)
	ucs.removeRecharge = rechargeUsecases.NewRemoveRechargeUseCase(r.rechargeRepo, ucs.recountSales, c.txManager, log)
	ucs.consumeRecharge = rechargeUsecases.NewConsumeRechargeUseCase(r.rechargeRepo, log)

	counters := consumptionUsecases.NewRechargeCounters(r.rechargeRepo, r.consumptionRepo, log)
	ucs.createConsumption = consumptionUsecases.NewCreateConsumptionUseCase(r.consumptionRepo, r.rechargeRepo, r.memberRepo, c.publisher, log)
	ucs.getConsumption = consumptionUsecases.NewGetConsumptionUseCase(r.consumptionRepo, r.rechargeRepo, r.packRepo, log)
	ucs.listConsumptions = consumptionUsecases.NewListConsumptionsUseCase(r.consumptionRepo, r.rechargeRepo, r.packRepo, log)
	ucs.consumptionStatistics = consumptionUsecases.NewGetConsumptionStatisticsUseCase(r.consumptionRepo, log)
	ucs.updateConsumption = consumptionUsecases.NewUpdateConsumptionUseCase(r.consumptionRepo, r.rechargeRepo, counters, c.txManager, log)
	ucs.removeConsumption = consumptionUsecases.NewRemoveConsumptionUseCase(r.consumptionRepo, counters, c.txManager, log)
	ucs.resetRechargeTimes = consumptionUsecases.NewResetRechargeTimesUseCase(r.rechargeRepo, counters, c.publisher, log)
	if acct.ReconcileBatchSize > 0 {
		ucs.resetRechargeTimes.SetBatchSize(acct.ReconcileBatchSize)
	}
	ucs.verifyRechargeTimes = consumptionUsecases.NewVerifyRechargeTimesUseCase(r.rechargeRepo, counters, log)

	sessionTTL := time.Duration(c.cfg.Auth.SessionTTLSeconds) * time.Second
	ucs.login = operatorUsecases.NewLoginUseCase(r.operatorRepo, c.hasher, c.jwtSvc, c.sessions, sessionTTL, log)
	ucs.logout = operatorUsecases.NewLogoutUseCase(c.sessions, log)

	statsTTL := time.Duration(acct.StatsCacheTTLSeconds) * time.Second
	ucs.rechargeStats = statsUsecases.NewGetRechargeStatsUseCase(r.rechargeRepo, c.statsCache, statsTTL, log)
	ucs.memberStats = statsUsecases.NewGetMemberStatsUseCase(r.memberRepo, c.statsCache, statsTTL, log)

	return ucs
}
