package template

import (
	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"github.com/teamdesk/teamdesk/engine/infra/server"
)

// RegisterRoutes mounts the template endpoints on the API group.
func RegisterRoutes(api *gin.RouterGroup, store *mongostore.Store) {
	h := NewHandler(store)
	g := api.Group("/template")

	g.POST("", server.RequirePermission(auth.PermissionTemplateCreate), h.create)
	g.POST("/import", server.RequirePermission(auth.PermissionTemplateImport), h.importOne)
	g.POST("/access", server.RequirePermission(auth.PermissionTemplateEdit), h.access)
	g.GET("", server.RequirePermission(auth.PermissionTemplateRead), h.list)
	g.GET("/autocomplete", server.RequirePermission(auth.PermissionTemplateAutocomplete), h.autocomplete)
	g.GET("/count", server.RequirePermission(auth.PermissionTemplateRead), h.count)
	g.GET("/:id", server.RequirePermission(auth.PermissionTemplateRead), h.find)
	g.PUT("/:id", server.RequirePermission(auth.PermissionTemplateEdit), h.update)
	g.DELETE("", server.RequirePermission(auth.PermissionTemplateDestroy), h.destroy)
}
