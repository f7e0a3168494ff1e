package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
)

// MemberRouteConfig holds dependencies for member routes.
type MemberRouteConfig struct {
	MemberHandler        *handlers.MemberHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMemberRoutes configures member routes.
func SetupMemberRoutes(engine *gin.Engine, cfg *MemberRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return cfg.PermissionMiddleware.RequirePermission(permission.ResourceMember, action)
	}

	members := engine.Group("/members")
	members.Use(cfg.AuthMiddleware.RequireAuth())
	{
		members.POST("", perm(permission.ActionCreate), cfg.MemberHandler.CreateMember)
		members.GET("", perm(permission.ActionRead), cfg.MemberHandler.ListMembers)
		members.GET("/:id", perm(permission.ActionRead), cfg.MemberHandler.GetMember)
		members.PUT("/:id", perm(permission.ActionUpdate), cfg.MemberHandler.UpdateMember)
		members.DELETE("/:id", perm(permission.ActionDelete), cfg.MemberHandler.DeleteMember)

		// Direct balance/points corrections bypass the recharge ledger.
		members.POST("/:id/balance", perm(permission.ActionUpdate), cfg.MemberHandler.AdjustBalance)
		members.POST("/:id/points", perm(permission.ActionUpdate), cfg.MemberHandler.AdjustPoints)
	}
}
