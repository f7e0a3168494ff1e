package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// repositories holds every repository instance created by the container.
type repositories struct {
	memberRepo      member.Repository
	packRepo        pack.Repository
	rechargeRepo    recharge.Repository
	consumptionRepo consumption.Repository
	operatorRepo    operator.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		memberRepo:      repository.NewMemberRepository(db, log),
		packRepo:        repository.NewPackRepository(db, log),
		rechargeRepo:    repository.NewRechargeRepository(db, log),
		consumptionRepo: repository.NewConsumptionRepository(db, log),
		operatorRepo:    repository.NewOperatorRepository(db, log),
	}
}
