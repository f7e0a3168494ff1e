package migration

import (
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MemberModel{},
		&models.PackModel{},
		&models.RechargeModel{},
		&models.ConsumptionModel{},
		&models.OperatorModel{},
	}
}
