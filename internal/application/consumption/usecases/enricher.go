package usecases

import (
	"context"

	"github.com/orris-inc/memberhub/internal/application/consumption/dto"
	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
)

// enricher attaches pack and recharge details to consumption DTOs with one
// batched lookup per relation.
type enricher struct {
	rechargeRepo recharge.Repository
	packRepo     pack.Repository
}

func (e *enricher) enrich(ctx context.Context, consumptions []*consumption.Consumption) ([]*dto.ConsumptionDTO, error) {
	rechargeIDs := make([]uint, 0, len(consumptions))
	packIDs := make([]uint, 0, len(consumptions))
	for _, c := range consumptions {
		if c.RechargeID() != nil {
			rechargeIDs = append(rechargeIDs, *c.RechargeID())
		}
		if c.PackID() != nil {
			packIDs = append(packIDs, *c.PackID())
		}
	}

	recharges := make(map[uint]*recharge.Recharge)
	if len(rechargeIDs) > 0 {
		loaded, err := e.rechargeRepo.GetByIDs(ctx, rechargeIDs)
		if err != nil {
			return nil, err
		}
		for _, r := range loaded {
			recharges[r.ID()] = r
		}
	}

	packs := make(map[uint]*pack.Pack)
	if len(packIDs) > 0 {
		loaded, err := e.packRepo.GetByIDs(ctx, packIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			packs[p.ID()] = p
		}
	}

	items := make([]*dto.ConsumptionDTO, 0, len(consumptions))
	for _, c := range consumptions {
		item := dto.ToConsumptionDTO(c)
		if c.PackID() != nil {
			item.WithPack(packs[*c.PackID()])
		}
		if c.RechargeID() != nil {
			item.WithRecharge(recharges[*c.RechargeID()])
		}
		items = append(items, item)
	}
	return items, nil
}
