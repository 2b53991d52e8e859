package notes

import (
	"notesapi/internal/shared/middleware"
	"notesapi/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupNoteRoutes registers note routes. All routes require an
// authenticated user; deletion is additionally gated to moderators and
// admins.
func SetupNoteRoutes(router *gin.RouterGroup, controller *Controller, authGuard gin.HandlerFunc) {
	noteRoutes := router.Group("/notes")
	noteRoutes.Use(authGuard)
	{
		noteRoutes.GET("", controller.GetNotes)
		noteRoutes.GET("/:id", controller.GetNote)
		noteRoutes.POST("", controller.CreateNote)
		noteRoutes.PUT("/:id", controller.UpdateNote)
		noteRoutes.PATCH("/:id", controller.UpdateStatus)
		noteRoutes.DELETE("/:id",
			middleware.RequireRoles(users.RoleAdmin, users.RoleModerator),
			controller.DeleteNote)
	}
}
