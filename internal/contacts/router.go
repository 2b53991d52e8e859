package contacts

import (
	"notesapi/internal/shared/middleware"
	"notesapi/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes registers contact routes. All routes require an
// authenticated user; deletion is gated to moderators and admins.
func SetupContactRoutes(router *gin.RouterGroup, controller *Controller, authGuard gin.HandlerFunc) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Use(authGuard)
	{
		contactRoutes.GET("", controller.GetContacts)
		contactRoutes.GET("/birthdays", controller.GetUpcomingBirthdays)
		contactRoutes.GET("/:id", controller.GetContact)
		contactRoutes.POST("", controller.CreateContact)
		contactRoutes.PUT("/:id", controller.UpdateContact)
		contactRoutes.DELETE("/:id",
			middleware.RequireRoles(users.RoleAdmin, users.RoleModerator),
			controller.DeleteContact)
	}
}
