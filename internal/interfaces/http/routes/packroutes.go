package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
)

// PackRouteConfig holds dependencies for package catalogue routes.
type PackRouteConfig struct {
	PackHandler          *handlers.PackHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPackRoutes configures package routes.
func SetupPackRoutes(engine *gin.Engine, cfg *PackRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return cfg.PermissionMiddleware.RequirePermission(permission.ResourcePack, action)
	}

	packs := engine.Group("/packages")
	packs.Use(cfg.AuthMiddleware.RequireAuth())
	{
		packs.POST("", perm(permission.ActionCreate), cfg.PackHandler.CreatePack)
		packs.GET("", perm(permission.ActionRead), cfg.PackHandler.ListPacks)
		packs.GET("/:id", perm(permission.ActionRead), cfg.PackHandler.GetPack)
		packs.PUT("/:id", perm(permission.ActionUpdate), cfg.PackHandler.UpdatePack)
		packs.DELETE("/:id", perm(permission.ActionDelete), cfg.PackHandler.DeletePack)
		packs.POST("/:id/recount-sales", perm(permission.ActionUpdate), cfg.PackHandler.RecountSales)
	}
}
