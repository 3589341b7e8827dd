package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"judoacademy.app/hub/internal/bootstrap"
	"judoacademy.app/hub/internal/config"
	"judoacademy.app/hub/internal/events"
	"judoacademy.app/hub/internal/handler"
	"judoacademy.app/hub/internal/middleware"
	"judoacademy.app/hub/internal/navigation"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/internal/service"
	"judoacademy.app/hub/pkg/database"
	"judoacademy.app/hub/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedGroups(db); err != nil {
		log.Fatalf("failed to seed groups: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	var searchService service.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchService = service.NewSearchService(meiliClient)
	}

	hub := events.NewHub()
	navigator := navigation.NewNavigator()
	mailer := service.NewMailer(cfg.SMTP)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	authMiddleware := middleware.NewAuthMiddleware(profileRepo, redisClient, cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, profileRepo, redisClient, hub, mailer, cfg)
	authHandler := handler.NewAuthHandler(authService, authMiddleware, redisClient)

	profileService := service.NewProfileService(userRepo, profileRepo)
	profileHandler := handler.NewProfileHandler(profileService)

	documentService := service.NewDocumentService(documentRepo, fileStorage, searchService)
	documentHandler := handler.NewDocumentHandler(documentService)

	groupService := service.NewGroupService(groupRepo, profileRepo, documentRepo)
	groupHandler := handler.NewGroupHandler(groupService)

	adminUserService := service.NewAdminUserService(userRepo, profileRepo, documentRepo)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService)

	navigationHandler := handler.NewNavigationHandler(navigator)
	eventsHandler := handler.NewEventsHandler(hub)

	router := gin.Default()
	setupCORS(router, cfg.AllowedOrigins)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/password-reset", authHandler.SendPasswordReset)
		auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		// Session restore decides anonymous vs authenticated itself
		auth.GET("/session", authHandler.Session)
	}

	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/events", eventsHandler.Stream)

		profile := api.Group("/profile")
		{
			profile.GET("/me", profileHandler.Me)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		member := api.Group("")
		member.Use(authMiddleware.RequireProfile())
		{
			member.POST("/navigation", navigationHandler.Navigate)
			member.GET("/navigation/:page", navigationHandler.Resolve)

			member.GET("/documents", documentHandler.List)
			member.GET("/documents/:id/download", documentHandler.Download)
			member.GET("/groups", groupHandler.List)

			admin := member.Group("/admin")
			admin.Use(authMiddleware.RequireAdmin())
			{
				admin.POST("/documents", documentHandler.Create)
				admin.PUT("/documents/:id", documentHandler.Update)
				admin.DELETE("/documents/:id", documentHandler.Delete)

				admin.POST("/groups", groupHandler.Create)
				admin.PUT("/groups/:id", groupHandler.Update)
				admin.DELETE("/groups/:id", groupHandler.Delete)
				admin.GET("/groups/:id/stats", groupHandler.Stats)

				admin.GET("/users", adminUserHandler.List)
				admin.POST("/users", adminUserHandler.Create)
				admin.PUT("/users/:id", adminUserHandler.Update)
				admin.DELETE("/users/:id", adminUserHandler.Remove)
			}
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when no Redis is configured; token revocation then
// degrades to expiry-only sessions.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, token revocation disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable: %v", err)
	}

	return client
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
