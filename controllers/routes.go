package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/middleware"
)

// RegisterRoutes mounts every point-of-sale endpoint on api. When enforceScopes
// is set, catalog and history writes also require the matching token scope;
// authentication itself is left to the group's middleware.
func RegisterRoutes(api *gin.RouterGroup, ctl *Controller, enforceScopes bool) {
	requireScope := func(scope string) gin.HandlerFunc {
		if !enforceScopes {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RequireScope(scope)
	}

	api.GET("/items", ctl.ListItems)
	api.POST("/items", requireScope(middleware.ScopeManageCatalog), ctl.CreateItem)
	api.PUT("/items/:id", requireScope(middleware.ScopeManageCatalog), ctl.UpdateItem)
	api.DELETE("/items/:id", requireScope(middleware.ScopeManageCatalog), ctl.DeleteItem)

	api.GET("/clients", ctl.ListClients)
	api.POST("/clients", requireScope(middleware.ScopeManageCatalog), ctl.CreateClient)
	api.PUT("/clients/:id", requireScope(middleware.ScopeManageCatalog), ctl.UpdateClient)
	api.DELETE("/clients/:id", requireScope(middleware.ScopeManageCatalog), ctl.DeleteClient)

	api.GET("/selection", ctl.GetSelection)
	api.PUT("/selection/items/:id", ctl.SetQuantity)
	api.POST("/selection/items/:id/adjust", ctl.AdjustQuantity)
	api.POST("/selection/reset", ctl.ResetSelection)
	api.PUT("/selection/client", ctl.SelectClient)

	api.POST("/draft", ctl.SubmitDraft)
	api.GET("/draft", ctl.GetDraft)
	api.POST("/draft/confirm", ctl.ConfirmDraft)
	api.POST("/draft/hold", ctl.HoldDraft)
	api.DELETE("/draft", ctl.CancelDraft)

	api.GET("/orders", ctl.ListOrders)
	api.GET("/orders/export", ctl.ExportOrders)
	api.POST("/orders/import", requireScope(middleware.ScopeManageOrders), ctl.ImportOrders)
	api.POST("/orders/backup", requireScope(middleware.ScopeManageOrders), ctl.BackupOrders)
	api.GET("/orders/:id", ctl.GetOrder)
	api.DELETE("/orders/:id", requireScope(middleware.ScopeManageOrders), ctl.DeleteOrder)
	api.POST("/orders/:id/confirm", ctl.ConfirmOrder)
	api.POST("/orders/:id/recreate", ctl.RecreateOrder)
}
