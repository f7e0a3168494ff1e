package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
)

// RechargeRouteConfig holds dependencies for recharge routes.
type RechargeRouteConfig struct {
	RechargeHandler      *handlers.RechargeHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupRechargeRoutes configures recharge routes.
func SetupRechargeRoutes(engine *gin.Engine, cfg *RechargeRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return cfg.PermissionMiddleware.RequirePermission(permission.ResourceRecharge, action)
	}

	recharges := engine.Group("/recharges")
	recharges.Use(cfg.AuthMiddleware.RequireAuth())
	{
		recharges.POST("", perm(permission.ActionCreate), cfg.RechargeHandler.CreateRecharge)
		recharges.GET("", perm(permission.ActionRead), cfg.RechargeHandler.ListRecharges)
		recharges.GET("/statistics", perm(permission.ActionRead), cfg.RechargeHandler.GetStatistics)
		recharges.GET("/:id", perm(permission.ActionRead), cfg.RechargeHandler.GetRecharge)
		recharges.PATCH("/:id", perm(permission.ActionUpdate), cfg.RechargeHandler.UpdateRecharge)
		recharges.DELETE("/:id", perm(permission.ActionDelete), cfg.RechargeHandler.RemoveRecharge)

		recharges.POST("/:id/consume-amount", perm(permission.ActionUpdate), cfg.RechargeHandler.ConsumeAmount)
		recharges.POST("/:id/consume-times", perm(permission.ActionUpdate), cfg.RechargeHandler.ConsumeTimes)
	}
}
