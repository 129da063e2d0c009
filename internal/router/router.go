package router

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/devillage/teamproject/backend/internal/handlers"
	"github.com/devillage/teamproject/backend/internal/middleware"
	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/devillage/teamproject/backend/internal/services"
	"github.com/devillage/teamproject/backend/pkg/counter"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the connections and collaborators the routes are built from.
// Everything except Postgres and Log may be nil; a nil Clicks counts on the
// posts table directly.
type Dependencies struct {
	Postgres     *gorm.DB
	Activities   *repositories.MongoActivityRepository
	Clicks       services.ClickCounter
	Events       services.EventSink
	FirebaseAuth *auth.Client
	JWTSecret    string
	Log          *logrus.Logger
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.ReComment{},
		&models.Bookmark{},
		&models.Like{},
		&models.ReportedPost{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if err := Migrate(deps.Postgres); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	deps.Log.Info("PostgreSQL auto-migrations completed")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories and Services ---
	store := repositories.NewGormStore(deps.Postgres)
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)

	var activityRepo repositories.ActivityRepository
	sinks := services.MultiSink{}
	if deps.Activities != nil {
		if err := deps.Activities.EnsureIndexes(context.Background()); err != nil {
			return fmt.Errorf("ensure activity indexes: %w", err)
		}
		activityRepo = deps.Activities
		sinks = append(sinks, services.NewActivitySink(deps.Activities))
	}
	if deps.Events != nil {
		sinks = append(sinks, deps.Events)
	}

	clicks := deps.Clicks
	if clicks == nil {
		clicks = counter.NewDBClickCounter(repositories.NewPostgresPostRepository(deps.Postgres))
	}

	postService := services.NewPostService(store, clicks, sinks, deps.Log)
	commentService := services.NewCommentService(store, deps.Log)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(userRepo, deps.FirebaseAuth, deps.JWTSecret).RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	var fallback middleware.TokenVerifier
	if deps.FirebaseAuth != nil {
		fallback = middleware.FirebaseVerifier(deps.FirebaseAuth, userRepo)
	}
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret, fallback))

	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewInteractionHandler(postService).RegisterInteractionRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewUserHandler(postService, activityRepo).RegisterUserRoutes(api)

	deps.Log.WithField("routes", len(e.Routes())).Info("All routes configured")
	return nil
}
