package tags

import (
	"notesapi/internal/shared/middleware"
	"notesapi/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupTagRoutes registers tag routes. All routes require an
// authenticated user; deletion is gated to moderators and admins.
func SetupTagRoutes(router *gin.RouterGroup, controller *Controller, authGuard gin.HandlerFunc) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Use(authGuard)
	{
		tagRoutes.GET("", controller.GetTags)
		tagRoutes.GET("/:id", controller.GetTag)
		tagRoutes.POST("", controller.CreateTag)
		tagRoutes.PUT("/:id", controller.UpdateTag)
		tagRoutes.DELETE("/:id",
			middleware.RequireRoles(users.RoleAdmin, users.RoleModerator),
			controller.DeleteTag)
	}
}
