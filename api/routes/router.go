// api/routes/router.go
package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"notesapi/internal/auth"
	"notesapi/internal/contacts"
	"notesapi/internal/notes"
	"notesapi/internal/shared/config"
	"notesapi/internal/shared/database"
	"notesapi/internal/shared/middleware"
	"notesapi/internal/tags"
	"notesapi/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	mailer auth.ConfirmationMailer
}

// NewRouter creates a new router instance. The mailer may be nil when the
// notification service is unavailable; signup still works, confirmation
// links are only logged.
func NewRouter(cfg *config.Config, db *database.DB, mailer auth.ConfirmationMailer) *Router {
	if mailer == nil {
		mailer = logOnlyMailer{}
	}
	return &Router{
		config: cfg,
		db:     db,
		mailer: mailer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Auth must be wired first so the guard can protect the other groups
	authService, err := r.buildAuthService()
	if err != nil {
		return err
	}
	authGuard := middleware.CurrentUser(authService)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		authController := auth.NewController(authService)
		auth.NewRouter(authController).SetupRoutes(api)

		r.setupNoteRoutes(api, authGuard)
		r.setupTagRoutes(api, authGuard)
		r.setupContactRoutes(api, authGuard)
	}

	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "notesapi-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "notesapi-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) buildAuthService() (auth.Service, error) {
	codec, err := auth.NewTokenCodec(r.config.JWT.Secret, r.config.JWT.Algorithm)
	if err != nil {
		return nil, err
	}

	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	return auth.NewService(authRepo, codec, r.mailer, r.config), nil
}

// setupNoteRoutes configures note management routes
func (r *Router) setupNoteRoutes(rg *gin.RouterGroup, authGuard gin.HandlerFunc) {
	noteRepo := notes.NewRepository(r.db.GetPostgreSQL())
	noteService := notes.NewService(noteRepo)
	noteController := notes.NewController(noteService)

	notes.SetupNoteRoutes(rg, noteController, authGuard)
}

// setupTagRoutes configures tag management routes
func (r *Router) setupTagRoutes(rg *gin.RouterGroup, authGuard gin.HandlerFunc) {
	tagRepo := tags.NewRepository(r.db.GetPostgreSQL())
	tagService := tags.NewService(tagRepo)
	tagController := tags.NewController(tagService)

	tags.SetupTagRoutes(rg, tagController, authGuard)
}

// setupContactRoutes configures contact management routes
func (r *Router) setupContactRoutes(rg *gin.RouterGroup, authGuard gin.HandlerFunc) {
	contactCache := cache.New(r.db.GetRedisClient(), "notesapi:contacts")

	contactRepo := contacts.NewRepository(r.db.GetPostgreSQL())
	contactService := contacts.NewService(contactRepo, contactCache, r.config.Redis.CacheTTL)
	contactController := contacts.NewController(contactService)

	contacts.SetupContactRoutes(rg, contactController, authGuard)
}

type logOnlyMailer struct{}

func (logOnlyMailer) SendConfirmation(ctx context.Context, email, username, token string) error {
	log.Printf("📧 [NOOP] Confirmation token for %s: %s", email, token)
	return nil
}
