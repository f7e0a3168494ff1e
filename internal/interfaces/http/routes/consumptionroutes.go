package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
)

// ConsumptionRouteConfig holds dependencies for consumption routes.
type ConsumptionRouteConfig struct {
	ConsumptionHandler   *handlers.ConsumptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupConsumptionRoutes configures consumption routes, including the
// recharge counter maintenance endpoints.
func SetupConsumptionRoutes(engine *gin.Engine, cfg *ConsumptionRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return cfg.PermissionMiddleware.RequirePermission(permission.ResourceConsumption, action)
	}

	consumptions := engine.Group("/consumptions")
	consumptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		consumptions.POST("", perm(permission.ActionCreate), cfg.ConsumptionHandler.CreateConsumption)
		consumptions.GET("", perm(permission.ActionRead), cfg.ConsumptionHandler.ListConsumptions)
		consumptions.GET("/statistics", perm(permission.ActionRead), cfg.ConsumptionHandler.GetStatistics)
		consumptions.GET("/:id", perm(permission.ActionRead), cfg.ConsumptionHandler.GetConsumption)
		consumptions.PATCH("/:id", perm(permission.ActionUpdate), cfg.ConsumptionHandler.UpdateConsumption)
		consumptions.DELETE("/:id", perm(permission.ActionDelete), cfg.ConsumptionHandler.RemoveConsumption)

		consumptions.POST("/reset-recharge-times", perm(permission.ActionReconcile), cfg.ConsumptionHandler.BatchResetRechargeTimes)
		consumptions.POST("/reset-recharge-times/:rechargeId", perm(permission.ActionReconcile), cfg.ConsumptionHandler.ResetRechargeTimes)
		consumptions.POST("/reset-all-recharge-times", perm(permission.ActionReconcile), cfg.ConsumptionHandler.ResetAllRechargeTimes)
		consumptions.GET("/verify-recharge-times/:rechargeId", perm(permission.ActionRead), cfg.ConsumptionHandler.VerifyRechargeTimes)
	}
}
