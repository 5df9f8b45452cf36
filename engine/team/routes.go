package team

import (
	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"github.com/teamdesk/teamdesk/engine/infra/server"
)

// RegisterRoutes mounts the team endpoints on the API group.
func RegisterRoutes(api *gin.RouterGroup, store *mongostore.Store) {
	h := NewHandler(store)
	g := api.Group("/team")

	g.POST("", server.RequirePermission(auth.PermissionTeamCreate), h.create)
	g.POST("/import", server.RequirePermission(auth.PermissionTeamImport), h.importOne)
	g.GET("", server.RequirePermission(auth.PermissionTeamRead), h.list)
	g.GET("/autocomplete", server.RequirePermission(auth.PermissionTeamAutocomplete), h.autocomplete)
	g.GET("/count", server.RequirePermission(auth.PermissionTeamRead), h.count)
	g.GET("/:id", server.RequirePermission(auth.PermissionTeamRead), h.find)
	g.PUT("/:id", server.RequirePermission(auth.PermissionTeamEdit), h.update)
	g.DELETE("", server.RequirePermission(auth.PermissionTeamDestroy), h.destroy)

	g.POST("/:id/member", server.RequirePermission(auth.PermissionTeamEdit), h.addMembers)
	g.DELETE("/:id/member", server.RequirePermission(auth.PermissionTeamEdit), h.removeMembers)
	g.PATCH("/:id/member/:memberId/invitation", server.RequirePermission(auth.PermissionTeamEdit), h.updateInvitation)
}
