package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller) *Router {
	return &Router{
		controller: controller,
	}
}

// SetupRoutes registers all auth routes. Every endpoint here is public;
// protected resources compose the CurrentUser middleware instead.
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", authRouter.controller.Signup)
		auth.POST("/login", authRouter.controller.Login)
		auth.GET("/refresh_token", authRouter.controller.RefreshToken)
		auth.GET("/confirmed_email/:token", authRouter.controller.ConfirmedEmail)
		auth.POST("/request_email", authRouter.controller.RequestEmail)
	}
}
